package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load("foodmarket")
	require.NoError(t, err)

	assert.Equal(t, "foodmarket", conf.ServiceName)
	assert.Equal(t, "localhost", conf.DB.Host)
	assert.Equal(t, "5432", conf.DB.Port)
	assert.Equal(t, "foodmarket", conf.DB.DBName)
	assert.Equal(t, "8080", conf.Server.Port)
	assert.Equal(t, "http://localhost:8080", conf.Server.PublicURL)
	assert.Equal(t, 24, conf.JWT.ExpirationHours)
	assert.Equal(t, time.Hour, conf.DB.ConnMaxLifetime)
	assert.Equal(t, "localhost:6379", conf.Redis.Addr)
	assert.Equal(t, "https://notify-bot.line.me/oauth/authorize", conf.Line.AuthorizeURL)
	assert.Equal(t, "https://notify-bot.line.me/oauth/token", conf.Line.TokenURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PUBLIC_URL", "https://food.example.com")
	t.Setenv("JWT_SIGNING_KEY", "prod-key")
	t.Setenv("LINE_CLIENT_ID", "line-client")

	conf, err := Load("foodmarket")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", conf.DB.Host)
	assert.Equal(t, 25, conf.DB.MaxOpenConns)
	assert.Equal(t, "9090", conf.Server.Port)
	assert.Equal(t, "https://food.example.com", conf.Server.PublicURL)
	assert.Equal(t, "prod-key", conf.JWT.SigningKey)
	assert.Equal(t, "line-client", conf.Line.ClientID)
	// State key falls back to the JWT signing key when unset
	assert.Equal(t, "prod-key", conf.Line.StateKey)
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "password",
		DBName:   "foodmarket",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=password dbname=foodmarket sslmode=disable",
		db.GetDSN())
}
