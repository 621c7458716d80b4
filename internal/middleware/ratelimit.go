package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterRedis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// ErrRedisClientRequired is returned for a Redis-backed limiter without a client.
var ErrRedisClientRequired = errors.New("redis rate limit store requires a redis client")

// RateLimitConfig configures one per-IP limiter.
type RateLimitConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration // memory store only

	// StoreType is config.RateLimitStoreMemory or config.RateLimitStoreRedis.
	StoreType string
	// RedisClient is shared with the rest of the process; the limiter never
	// closes it.
	RedisClient *redis.Client
	// Prefix separates the counters of different limiters in Redis.
	Prefix string

	Logger zerolog.Logger
}

// NewRateLimiter returns a gin middleware limiting requests per client IP.
// Requests over the limit get a 429 JSON error.
func NewRateLimiter(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  int64(cfg.RequestsPerMinute),
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "ratelimit"
	}

	var store limiter.Store
	switch cfg.StoreType {
	case config.RateLimitStoreRedis:
		if cfg.RedisClient == nil {
			return nil, ErrRedisClientRequired
		}
		var err error
		store, err = limiterRedis.NewStoreWithOptions(cfg.RedisClient, limiter.StoreOptions{
			Prefix: prefix,
		})
		if err != nil {
			return nil, err
		}
	default:
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: cfg.CleanupInterval,
		})
	}

	logger := cfg.Logger
	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn().
				Str("ip", util.ClientIP(c)).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":           false,
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open
			logger.Error().Err(err).Msg("rate limiter store error")
			c.Next()
		}),
	), nil
}

// NewMemoryRateLimiter returns an in-process limiter.
func NewMemoryRateLimiter(requestsPerMinute int) (gin.HandlerFunc, error) {
	return NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		StoreType:         config.RateLimitStoreMemory,
		CleanupInterval:   5 * time.Minute,
		Logger:            zerolog.Nop(),
	})
}
