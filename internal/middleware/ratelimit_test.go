package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func limitedRouter(t *testing.T, limiter gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func hit(router http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewMemoryRateLimiter(t *testing.T) {
	limiter, err := NewMemoryRateLimiter(5)
	require.NoError(t, err)
	router := limitedRouter(t, limiter)

	for i := range 5 {
		assert.Equal(t, http.StatusOK, hit(router, "192.168.1.100").Code, "request %d", i+1)
	}

	w := hit(router, "192.168.1.100")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.Contains(t, w.Body.String(), "Too many requests")
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	limiter, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 2,
		StoreType:         config.RateLimitStoreMemory,
		Logger:            zerolog.Nop(),
	})
	require.NoError(t, err)
	router := limitedRouter(t, limiter)

	for _, ip := range []string{"192.168.1.1", "192.168.1.2", "192.168.1.3"} {
		assert.Equal(t, http.StatusOK, hit(router, ip).Code)
		assert.Equal(t, http.StatusOK, hit(router, ip).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, ip).Code, "third request from %s", ip)
	}
}

func TestRateLimiter_RedisRequiresClient(t *testing.T) {
	_, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 10,
		StoreType:         config.RateLimitStoreRedis,
	})
	assert.ErrorIs(t, err, ErrRedisClientRequired)
}

func TestRedisRateLimiter_SharedAcrossInstances(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping Redis test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping Redis test: Docker not available (%v)", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })

	newInstance := func() *gin.Engine {
		limiter, err := NewRateLimiter(RateLimitConfig{
			RequestsPerMinute: 3,
			StoreType:         config.RateLimitStoreRedis,
			RedisClient:       client,
			Prefix:            "test:login",
			Logger:            zerolog.Nop(),
		})
		require.NoError(t, err)
		return limitedRouter(t, limiter)
	}
	podA, podB := newInstance(), newInstance()

	assert.Equal(t, http.StatusOK, hit(podA, "10.0.0.9").Code)
	assert.Equal(t, http.StatusOK, hit(podB, "10.0.0.9").Code)
	assert.Equal(t, http.StatusOK, hit(podA, "10.0.0.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(podB, "10.0.0.9").Code, "limit is shared through redis")
}
