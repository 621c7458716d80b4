package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/cache"
	"github.com/Aiionteam/app.aiion.site/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCacheWrapper_CacheHit(t *testing.T) {
	ctx := context.Background()
	memCache := cache.NewMemoryCache[int64]()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockMetricsStore(ctrl)
	// No expectations: a store call fails the test

	wrapper := NewCacheWrapper(mockStore, memCache)
	require.NoError(t, memCache.Set(ctx, usersCountKey, 42, time.Minute))

	count, err := wrapper.GetUsersCount(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestCacheWrapper_CacheMiss(t *testing.T) {
	ctx := context.Background()
	memCache := cache.NewMemoryCache[int64]()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockMetricsStore(ctrl)
	mockStore.EXPECT().CountDiaries().Return(int64(100), nil).Times(1)

	wrapper := NewCacheWrapper(mockStore, memCache)

	count, err := wrapper.GetDiariesCount(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)

	// second read is served from cache
	count, err = wrapper.GetDiariesCount(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
}

func TestCacheWrapper_UpdateGauges(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockMetricsStore(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)

	mockStore.EXPECT().CountUsers().Return(int64(3), nil)
	mockStore.EXPECT().CountDiaries().Return(int64(9), nil)
	recorder.EXPECT().SetUsersCount(3)
	recorder.EXPECT().SetDiariesCount(9)

	wrapper := NewCacheWrapper(mockStore, cache.NewMemoryCache[int64]())
	assert.NoError(t, wrapper.UpdateGauges(ctx, recorder, time.Minute))
}

func TestCacheWrapper_UpdateGauges_DBError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockMetricsStore(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)
	dbErr := errors.New("database connection failed")

	mockStore.EXPECT().CountUsers().Return(int64(0), dbErr)
	mockStore.EXPECT().CountDiaries().Return(int64(5), nil)
	recorder.EXPECT().RecordDatabaseQueryError("count_users")
	recorder.EXPECT().SetDiariesCount(5)
	// SetUsersCount must not be called

	wrapper := NewCacheWrapper(mockStore, cache.NewMemoryCache[int64]())
	err := wrapper.UpdateGauges(ctx, recorder, time.Minute)
	assert.ErrorIs(t, err, dbErr)
}
