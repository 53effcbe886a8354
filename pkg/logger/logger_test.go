package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_WithoutInit(t *testing.T) {
	// The middleware must work before (or without) InitLogger, falling back
	// to the no-op logger instead of dereferencing a nil global.
	saved := log
	log = nil
	defer func() { log = saved }()

	e := echo.New()
	e.Use(Middleware())
	e.GET("/health", func(c echo.Context) error {
		assert.NotNil(t, FromContext(c))
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		e.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLogger_NeverNil(t *testing.T) {
	saved := log
	log = nil
	defer func() { log = saved }()

	assert.NotNil(t, GetLogger())
}

func TestInitLogger(t *testing.T) {
	err := InitLogger(&LogConfig{
		Level:       "debug",
		Environment: "production",
		ServiceName: "foodmarket",
	})
	require.NoError(t, err)
	assert.NotNil(t, GetLogger())
}
