package metrics

import (
	"context"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
)

// Cache keys for gauge counts.
const (
	usersCountKey   = "count:users"
	diariesCountKey = "count:diaries"
)

// CacheWrapper reads gauge counts through a cache so several instances
// updating gauges do not each run COUNT queries.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{store: store, cache: cache}
}

func (m *CacheWrapper) GetUsersCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return m.getCountWithCache(ctx, usersCountKey, ttl, m.store.CountUsers)
}

func (m *CacheWrapper) GetDiariesCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return m.getCountWithCache(ctx, diariesCountKey, ttl, m.store.CountDiaries)
}

func (m *CacheWrapper) getCountWithCache(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func() (int64, error),
) (int64, error) {
	return m.cache.GetWithFetch(ctx, key, ttl,
		func(ctx context.Context, key string) (int64, error) {
			return fetchFunc()
		})
}

// UpdateGauges refreshes the record-count gauges. A failed count is
// recorded and leaves its gauge unchanged.
func (m *CacheWrapper) UpdateGauges(ctx context.Context, r core.Recorder, ttl time.Duration) error {
	var firstErr error

	if n, err := m.GetUsersCount(ctx, ttl); err != nil {
		r.RecordDatabaseQueryError("count_users")
		firstErr = err
	} else {
		r.SetUsersCount(int(n))
	}

	if n, err := m.GetDiariesCount(ctx, ttl); err != nil {
		r.RecordDatabaseQueryError("count_diaries")
		if firstErr == nil {
			firstErr = err
		}
	} else {
		r.SetDiariesCount(int(n))
	}

	return firstErr
}
