package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
)

var _ core.TokenStore = (*MemoryStore)(nil)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a single-process TokenStore for development and tests.
// Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (m *MemoryStore) SaveAccessToken(
	_ context.Context,
	provider, subjectID, token string,
	ttl time.Duration,
) error {
	return m.set(accessTokenKey(provider, subjectID), token, ttl)
}

func (m *MemoryStore) SaveRefreshToken(
	_ context.Context,
	provider, subjectID, token string,
	ttl time.Duration,
) error {
	return m.set(refreshTokenKey(provider, subjectID), token, ttl)
}

func (m *MemoryStore) GetAccessToken(_ context.Context, provider, subjectID string) (string, error) {
	return m.get(accessTokenKey(provider, subjectID), false)
}

func (m *MemoryStore) GetRefreshToken(_ context.Context, provider, subjectID string) (string, error) {
	return m.get(refreshTokenKey(provider, subjectID), false)
}

func (m *MemoryStore) DeleteTokens(_ context.Context, provider, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, accessTokenKey(provider, subjectID))
	delete(m.items, refreshTokenKey(provider, subjectID))
	return nil
}

func (m *MemoryStore) SaveAuthorizationCode(
	_ context.Context,
	provider, code, state string,
	ttl time.Duration,
) error {
	return m.set(authCodeKey(provider, code), state, ttl)
}

func (m *MemoryStore) VerifyAndDeleteAuthorizationCode(
	_ context.Context,
	provider, code string,
) (string, error) {
	return m.get(authCodeKey(provider, code), true)
}

func (m *MemoryStore) Health(context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]entry)
	return nil
}

func (m *MemoryStore) set(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

// get reads key under the lock, removing it when consume is set or when
// it has expired.
func (m *MemoryStore) get(key string, consume bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return "", ErrNotFound
	}
	if consume {
		delete(m.items, key)
	}
	return e.value, nil
}
