package cache

import (
	"context"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
)

// Options configures a Redis-backed cache.
type Options struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key, e.g. "aiion:users:".
	KeyPrefix string
	// ClientTTL is the local TTL of rueidis client-side caching.
	ClientTTL time.Duration
	// SizePerConnMB bounds the client-side cache of each connection.
	SizePerConnMB int
}

// fetchThrough is the plain cache-aside read shared by caches that have no
// stampede protection of their own.
func fetchThrough[T any](
	ctx context.Context,
	c core.Cache[T],
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := fetchFunc(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.Set(ctx, key, value, ttl)
	return value, nil
}
