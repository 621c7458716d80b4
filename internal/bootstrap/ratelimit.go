package bootstrap

import (
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	login    gin.HandlerFunc
	callback gin.HandlerFunc
	token    gin.HandlerFunc
	api      gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
	logger zerolog.Logger,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		noOp := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{login: noOp, callback: noOp, token: noOp, api: noOp}, nil
	}
	return createRateLimiters(cfg, redisClient, logger)
}

// createRateLimiters creates rate limiting middlewares for all endpoints
func createRateLimiters(
	cfg *config.Config,
	redisClient *redis.Client,
	logger zerolog.Logger,
) (rateLimitMiddlewares, error) {
	if cfg.RateLimitStore == config.RateLimitStoreRedis {
		logger.Info().Msg("rate limiting enabled (store: redis, shared client)")
	} else {
		logger.Info().Msg("rate limiting enabled (store: memory, single instance only)")
	}

	var firstErr error
	createLimiter := func(requestsPerMinute int, name string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         cfg.RateLimitStore,
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			Prefix:            "aiion:ratelimit:" + name + ":",
			Logger:            logger,
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to create %s rate limiter: %w", name, err)
		}
		return limiter
	}

	limiters := rateLimitMiddlewares{
		login:    createLimiter(cfg.LoginRateLimit, "login"),
		callback: createLimiter(cfg.CallbackRateLimit, "callback"),
		token:    createLimiter(cfg.TokenRateLimit, "token"),
		api:      createLimiter(cfg.APIRateLimit, "api"),
	}
	return limiters, firstErr
}
