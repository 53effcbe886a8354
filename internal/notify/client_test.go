package notify

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"foodmarket/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLineConfig(tokenURL string) *config.LineConfig {
	return &config.LineConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/notify/callback",
		AuthorizeURL: "https://notify-bot.line.me/oauth/authorize",
		TokenURL:     tokenURL,
	}
}

func TestClient_AuthCodeURL(t *testing.T) {
	client := NewClient(testLineConfig("https://notify-bot.line.me/oauth/token"))

	raw := client.AuthCodeURL("signed-state")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "notify-bot.line.me", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/notify/callback", q.Get("redirect_uri"))
	assert.Equal(t, "notify", q.Get("scope"))
	assert.Equal(t, "signed-state", q.Get("state"))
}

func TestClient_ExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		assert.Equal(t, "the-code", r.PostFormValue("code"))
		assert.Equal(t, "client-id", r.PostFormValue("client_id"))
		assert.Equal(t, "client-secret", r.PostFormValue("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"message":"ok","access_token":"issued-token"}`))
	}))
	defer srv.Close()

	client := NewClient(testLineConfig(srv.URL))

	token, err := client.ExchangeCode("the-code")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token.AccessToken)
}

func TestClient_ExchangeCodeFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non_200_status",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"status":400,"message":"invalid code"}`, http.StatusBadRequest)
			},
		},
		{
			"missing_access_token",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":200,"message":"ok"}`))
			},
		},
		{
			"invalid_json",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(testLineConfig(srv.URL))
			_, err := client.ExchangeCode("the-code")
			assert.Error(t, err)
		})
	}
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, NewClient(testLineConfig("url")).Configured())

	unconfigured := NewClient(&config.LineConfig{})
	assert.False(t, unconfigured.Configured())
}
