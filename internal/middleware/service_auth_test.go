package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"

	httpclient "github.com/appleboy/go-httpclient"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceSecret = "shared-service-secret"

// newGuardedServer echoes the request body behind ServiceAuth.
func newGuardedServer(t *testing.T, cfg ServiceAuthConfig) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg.Logger = zerolog.Nop()

	r := gin.New()
	r.POST("/api/users/find-by-email-provider", ServiceAuth(cfg), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postWith(t *testing.T, c *http.Client, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	got, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(got)
}

func TestServiceAuth_None(t *testing.T) {
	srv := newGuardedServer(t, ServiceAuthConfig{Mode: config.ServiceAuthNone})

	code, _ := postWith(t, http.DefaultClient, srv.URL+"/api/users/find-by-email-provider", `{}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestServiceAuth_Simple(t *testing.T) {
	srv := newGuardedServer(t, ServiceAuthConfig{
		Mode:   config.ServiceAuthSimple,
		Secret: serviceSecret,
		Header: "X-API-Secret",
	})
	url := srv.URL + "/api/users/find-by-email-provider"

	signed, err := httpclient.NewAuthClient(config.ServiceAuthSimple, serviceSecret,
		httpclient.WithHeaderName("X-API-Secret"))
	require.NoError(t, err)
	code, body := postWith(t, signed, url, `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"email":"a@b.com"}`, body)

	wrong, err := httpclient.NewAuthClient(config.ServiceAuthSimple, "other",
		httpclient.WithHeaderName("X-API-Secret"))
	require.NoError(t, err)
	code, body = postWith(t, wrong, url, `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, body, "service authentication required")

	code, _ = postWith(t, http.DefaultClient, url, `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServiceAuth_HMAC(t *testing.T) {
	srv := newGuardedServer(t, ServiceAuthConfig{
		Mode:   config.ServiceAuthHMAC,
		Secret: serviceSecret,
		MaxAge: time.Minute,
	})
	url := srv.URL + "/api/users/find-by-email-provider"

	signed, err := httpclient.NewAuthClient(config.ServiceAuthHMAC, serviceSecret)
	require.NoError(t, err)
	code, body := postWith(t, signed, url, `{"email":"a@b.com","provider":"google"}`)
	assert.Equal(t, http.StatusOK, code)
	// the body is still readable after verification
	assert.JSONEq(t, `{"email":"a@b.com","provider":"google"}`, body)

	wrong, err := httpclient.NewAuthClient(config.ServiceAuthHMAC, "other")
	require.NoError(t, err)
	code, _ = postWith(t, wrong, url, `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = postWith(t, http.DefaultClient, url, `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}
