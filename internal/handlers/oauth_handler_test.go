package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/Aiionteam/app.aiion.site/internal/auth"
	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

func (e *testEnv) expectLogin(code, email string) {
	tok := &oauth2.Token{AccessToken: "tok-" + code}
	e.idp.EXPECT().ExchangeCode(gomock.Any(), code).Return(tok, nil)
	e.idp.EXPECT().FetchProfile(gomock.Any(), tok).
		Return(&core.Profile{ProviderID: "g-" + email, Email: email, Name: "A"}, nil)
}

func redirectQuery(t *testing.T, location string) url.Values {
	t.Helper()
	u, err := url.Parse(location)
	require.NoError(t, err)
	assert.Equal(t, testFrontendURL+"/login/callback", u.Scheme+"://"+u.Host+u.Path)
	return u.Query()
}

func TestAuthURL(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/auth/google/auth-url", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	state := body["state"].(string)
	assert.Regexp(t, `^[0-9a-f]{32}$`, state)
	assert.Contains(t, body["auth_url"], "state="+state)
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"), "state is kept in the session")

	w = e.do(t, http.MethodGet, "/api/auth/myspace/auth-url", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_RedirectsToProvider(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/auth/google/login", nil, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://accounts.example.com/auth?state=")
}

func TestCallback_Success(t *testing.T) {
	e := newTestEnv(t)
	e.expectLogin("abc123", "a@b.com")

	w := e.do(t, http.MethodGet, "/api/auth/google/callback?code=abc123&state=s", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)

	q := redirectQuery(t, w.Header().Get("Location"))
	assert.Equal(t, "google", q.Get("provider"))
	require.NotEmpty(t, q.Get("token"))
	assert.NotEmpty(t, q.Get("refresh_token"))

	w = e.do(t, http.MethodGet, "/api/auth/google/user", nil, bearer(q.Get("token")))
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])
}

func TestCallback_ProviderError(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet,
		"/api/auth/google/callback?error=access_denied&error_description=denied+by+user", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)

	q := redirectQuery(t, w.Header().Get("Location"))
	assert.Equal(t, "access_denied", q.Get("error"))
	assert.Equal(t, "denied by user", q.Get("error_description"))
	assert.Empty(t, q.Get("token"))
}

func TestCallback_StateMismatch(t *testing.T) {
	e := newTestEnv(t)

	start := e.do(t, http.MethodGet, "/api/auth/google/login", nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, start.Code)

	w := e.do(t, http.MethodGet, "/api/auth/google/callback?code=abc123&state=forged", nil, withCookies(start))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "invalid state", redirectQuery(t, w.Header().Get("Location")).Get("error"))
}

func TestCallback_UpstreamFailure(t *testing.T) {
	e := newTestEnv(t)
	e.idp.EXPECT().ExchangeCode(gomock.Any(), "abc123").Return(nil, auth.ErrTokenExchange)

	w := e.do(t, http.MethodGet, "/api/auth/google/callback?code=abc123", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, redirectQuery(t, w.Header().Get("Location")).Get("error"), "authentication failed")
}

func TestAuthorizationCodeFlow(t *testing.T) {
	e := newTestEnv(t)
	e.expectLogin("code-1", "a@b.com")

	w := e.do(t, http.MethodPost, "/api/auth/google/authorization-code",
		map[string]string{"code": "code-1", "state": "st"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/google/token",
		map[string]string{"code": "code-1", "state": "st"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.Equal(t, "Bearer", body["token_type"])
	assert.InDelta(t, 3600, body["expires_in"], 0)
	assert.Equal(t, "a@b.com", body["user"].(map[string]any)["email"])

	w = e.do(t, http.MethodPost, "/api/auth/google/token",
		map[string]string{"code": "code-1", "state": "st"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid or expired authorization code", decode(t, w)["message"])
}

func TestToken_Errors(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/google/token", `{"state":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/auth/google/authorization-code",
		map[string]string{"code": "c", "state": "right"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/auth/google/token",
		map[string]string{"code": "c", "state": "wrong"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "state mismatch", decode(t, w)["message"])

	w = e.do(t, http.MethodPost, "/api/auth/myspace/token",
		map[string]string{"code": "c", "state": "right"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	e := newTestEnv(t)
	e.expectLogin("abc123", "a@b.com")

	w := e.do(t, http.MethodGet, "/api/auth/google/callback?code=abc123", nil, nil)
	q := redirectQuery(t, w.Header().Get("Location"))

	w = e.do(t, http.MethodPost, "/api/auth/google/refresh",
		map[string]string{"refresh_token": q.Get("refresh_token")}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decode(t, w)
	access := refreshed["access_token"].(string)

	w = e.do(t, http.MethodGet, "/api/auth/google/user", nil, bearer(q.Get("token")))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "superseded access token")

	w = e.do(t, http.MethodPost, "/api/auth/google/refresh",
		map[string]string{"refresh_token": "garbage"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/api/auth/google/logout", nil, bearer(access))
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/auth/google/user", nil, bearer(access))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = e.do(t, http.MethodPost, "/api/auth/google/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
