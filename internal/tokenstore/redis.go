package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/redis/go-redis/v9"
)

var _ core.TokenStore = (*RedisStore)(nil)

// RedisStore keeps credentials in Redis with native key expiry. The
// client is owned by the caller and is not closed by Close.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveAccessToken(
	ctx context.Context,
	provider, subjectID, token string,
	ttl time.Duration,
) error {
	return s.set(ctx, accessTokenKey(provider, subjectID), token, ttl)
}

func (s *RedisStore) SaveRefreshToken(
	ctx context.Context,
	provider, subjectID, token string,
	ttl time.Duration,
) error {
	return s.set(ctx, refreshTokenKey(provider, subjectID), token, ttl)
}

func (s *RedisStore) GetAccessToken(ctx context.Context, provider, subjectID string) (string, error) {
	return s.get(ctx, accessTokenKey(provider, subjectID))
}

func (s *RedisStore) GetRefreshToken(ctx context.Context, provider, subjectID string) (string, error) {
	return s.get(ctx, refreshTokenKey(provider, subjectID))
}

func (s *RedisStore) DeleteTokens(ctx context.Context, provider, subjectID string) error {
	err := s.client.Del(ctx,
		accessTokenKey(provider, subjectID),
		refreshTokenKey(provider, subjectID),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) SaveAuthorizationCode(
	ctx context.Context,
	provider, code, state string,
	ttl time.Duration,
) error {
	return s.set(ctx, authCodeKey(provider, code), state, ttl)
}

// VerifyAndDeleteAuthorizationCode uses GETDEL so that two concurrent
// callers cannot both observe the state.
func (s *RedisStore) VerifyAndDeleteAuthorizationCode(
	ctx context.Context,
	provider, code string,
) (string, error) {
	state, err := s.client.GetDel(ctx, authCodeKey(provider, code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return state, nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return nil
}

func (s *RedisStore) set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}
