package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
)

type cacheItem[T any] struct {
	value     T
	expiresAt time.Time
}

var _ core.Cache[struct{}] = (*MemoryCache[struct{}])(nil)

// MemoryCache is a process-local Cache with lazy expiry. Expired entries
// are dropped on read and swept on write once the map has grown.
type MemoryCache[T any] struct {
	mu        sync.RWMutex
	items     map[string]cacheItem[T]
	now       func() time.Time
	sweepSize int
}

// NewMemoryCache creates a new memory cache instance.
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{
		items:     make(map[string]cacheItem[T]),
		now:       time.Now,
		sweepSize: 1024,
	}
}

func (m *MemoryCache[T]) Get(ctx context.Context, key string) (T, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, ErrCacheMiss
	}
	if !m.now().Before(item.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.expiresAt.Equal(item.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return zero, ErrCacheMiss
	}
	return item.value, nil
}

func (m *MemoryCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if len(m.items) >= m.sweepSize {
		for k, it := range m.items {
			if !now.Before(it.expiresAt) {
				delete(m.items, k)
			}
		}
	}
	m.items[key] = cacheItem[T]{value: value, expiresAt: now.Add(ttl)}
	return nil
}

func (m *MemoryCache[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Close drops every entry.
func (m *MemoryCache[T]) Close() error {
	m.mu.Lock()
	m.items = make(map[string]cacheItem[T])
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[T]) Health(ctx context.Context) error {
	return nil
}

// GetWithFetch is a plain cache-aside read without stampede protection.
func (m *MemoryCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	return fetchThrough[T](ctx, m, key, ttl, fetchFunc)
}
