package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	retry "github.com/appleboy/go-httpretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOptimizedTransport(t *testing.T) {
	tr := CreateOptimizedTransport(true)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, 20, tr.MaxIdleConnsPerHost)

	assert.False(t, CreateOptimizedTransport(false).TLSClientConfig.InsecureSkipVerify)
}

func TestNewRetryClient_SimpleAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s3cret", r.Header.Get("X-API-Secret"))
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	rc, err := NewRetryClient(RetryConfig{
		AuthMode:   "simple",
		AuthSecret: "s3cret",
		AuthHeader: "X-API-Secret",
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)

	resp, err := rc.Post(context.Background(), srv.URL,
		retry.WithBody("application/json", strings.NewReader(`{"ok":true}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	got, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"ok":true}`, string(got))
}

