package bootstrap

import (
	"context"
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/tokenstore"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// initializeRedisClient opens the go-redis client shared by the token store
// and the rate limiters. Returns nil when neither uses Redis. The rueidis
// caches open their own connections.
func initializeRedisClient(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
) (*redis.Client, error) {
	needed := cfg.TokenStoreType == config.TokenStoreRedis ||
		(cfg.EnableRateLimit && cfg.RateLimitStore == config.RateLimitStoreRedis)
	if !needed {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("redis client initialized")
	return client, nil
}

// initializeTokenStore selects the token store backend.
func initializeTokenStore(cfg *config.Config, client *redis.Client) (core.TokenStore, error) {
	switch cfg.TokenStoreType {
	case config.TokenStoreRedis:
		if client == nil {
			return nil, fmt.Errorf("token store %q requires a redis client", cfg.TokenStoreType)
		}
		return tokenstore.NewRedisStore(client), nil
	default:
		return tokenstore.NewMemoryStore(), nil
	}
}
