package bootstrap

import (
	"context"
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/cache"
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/models"

	"github.com/rs/zerolog"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config, logger zerolog.Logger) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.Info().Msg("prometheus metrics initialized")
	} else {
		logger.Info().Msg("metrics disabled (using noop implementation)")
	}
	return recorder
}

// newCache builds a cache of the given type. prefix namespaces its keys in
// Redis.
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	cacheType, prefix string,
	opts cache.Options,
) (core.Cache[T], error) {
	opts.Addr = cfg.RedisAddr
	opts.Password = cfg.RedisPassword
	opts.DB = cfg.RedisDB
	opts.KeyPrefix = prefix

	switch cacheType {
	case config.CacheTypeRedisAside:
		return cache.NewRueidisAsideCache[T](opts)
	case config.CacheTypeRedis:
		return cache.NewRueidisCache[T](ctx, opts)
	default:
		return cache.NewMemoryCache[T](), nil
	}
}

// initializeMetricsCache initializes the gauge count cache. It is nil when
// gauges are not updated.
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
) (core.Cache[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	c, err := newCache[int64](ctx, cfg, cfg.MetricsCacheType, "aiion:metrics:", cache.Options{
		ClientTTL:     cfg.MetricsCacheClientTTL,
		SizePerConnMB: cfg.MetricsCacheSizePerConn,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize %s metrics cache: %w", cfg.MetricsCacheType, err)
	}
	logger.Info().Str("type", cfg.MetricsCacheType).Msg("metrics cache initialized")
	return c, c.Close, nil
}

// initializeUserCache initializes the user cache (always enabled, defaults to memory)
func initializeUserCache(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
) (core.Cache[models.User], func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	c, err := newCache[models.User](ctx, cfg, cfg.UserCacheType, "aiion:users:", cache.Options{
		ClientTTL:     cfg.UserCacheClientTTL,
		SizePerConnMB: cfg.UserCacheSizePerConn,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize %s user cache: %w", cfg.UserCacheType, err)
	}
	logger.Info().
		Str("type", cfg.UserCacheType).
		Dur("ttl", cfg.UserCacheTTL).
		Msg("user cache initialized")
	return c, c.Close, nil
}
