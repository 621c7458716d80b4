package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGoogle serves a token endpoint and a userinfo endpoint.
func fakeGoogle(t *testing.T, accessToken string, userinfo map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "abc123", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+accessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfo)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogle(srv *httptest.Server) *GoogleProvider {
	return NewGoogleProvider(ProviderConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
	}, GoogleEndpoints{
		IssuerURL:   srv.URL,
		AuthURL:     srv.URL + "/auth",
		TokenURL:    srv.URL + "/token",
		UserInfoURL: srv.URL + "/userinfo",
	}, srv.Client())
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	srv := fakeGoogle(t, "tok1", nil)
	p := newTestGoogle(srv)

	u, err := url.Parse(p.AuthCodeURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", u.Path)
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "openid profile email", u.Query().Get("scope"))
	assert.Equal(t, "google", p.Name())
	assert.Equal(t, "Google", p.DisplayName())
}

func TestGoogleProvider_ExchangeAndFetch(t *testing.T) {
	srv := fakeGoogle(t, "tok1", map[string]any{
		"sub":     "g-123",
		"email":   "a@b.com",
		"name":    "A",
		"picture": "https://example.com/a.png",
	})
	p := newTestGoogle(srv)
	ctx := context.Background()

	tok, err := p.ExchangeCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok.AccessToken)

	profile, err := p.FetchProfile(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "g-123", profile.ProviderID)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.Equal(t, "A", profile.Name)
	assert.Equal(t, "A", profile.Nickname)
	assert.Equal(t, "https://example.com/a.png", profile.AvatarURL)
}

func TestGoogleProvider_ExchangeWithoutAccessToken(t *testing.T) {
	srv := fakeGoogle(t, "", nil)
	p := newTestGoogle(srv)

	_, err := p.ExchangeCode(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrTokenExchange)
}

func TestGoogleProvider_FetchProfileErrors(t *testing.T) {
	t.Run("no email", func(t *testing.T) {
		srv := fakeGoogle(t, "tok1", map[string]any{"sub": "g-1", "name": "A"})
		p := newTestGoogle(srv)
		tok, err := p.ExchangeCode(context.Background(), "abc123")
		require.NoError(t, err)

		_, err = p.FetchProfile(context.Background(), tok)
		assert.ErrorIs(t, err, ErrMissingEmail)
	})

	t.Run("name falls back to email", func(t *testing.T) {
		srv := fakeGoogle(t, "tok1", map[string]any{"sub": "g-1", "email": "x@y.com"})
		p := newTestGoogle(srv)
		tok, err := p.ExchangeCode(context.Background(), "abc123")
		require.NoError(t, err)

		profile, err := p.FetchProfile(context.Background(), tok)
		require.NoError(t, err)
		assert.Equal(t, "x@y.com", profile.Name)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := fakeGoogle(t, "tok1", map[string]any{"sub": "g-1", "email": "x@y.com"})
		p := newTestGoogle(srv)
		tok, err := p.ExchangeCode(context.Background(), "abc123")
		require.NoError(t, err)
		tok.AccessToken = "forged"

		_, err = p.FetchProfile(context.Background(), tok)
		assert.ErrorIs(t, err, ErrUserInfo)
	})
}
