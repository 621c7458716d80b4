package core

import (
	"context"
	"time"
)

// Cache[T] is a typed key-value cache. Implementations live in
// internal/cache (memory, rueidis, rueidis-aside).
type Cache[T any] interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
	Health(ctx context.Context) error

	// GetWithFetch is the cache-aside read: on a miss fetchFunc loads the
	// value and it is stored with ttl.
	GetWithFetch(
		ctx context.Context,
		key string,
		ttl time.Duration,
		fetchFunc func(ctx context.Context, key string) (T, error),
	) (T, error)
}
