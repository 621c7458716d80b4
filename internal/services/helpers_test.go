package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/cache"
	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fileDSN returns a sqlite DSN on a temp file so that several connections
// (and several stores) share one database.
func fileDSN(t *testing.T, txlock string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aiion.db")
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL&_txlock=" + txlock
}

func openStore(t *testing.T, dsn string) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func newTestStore(t *testing.T) *store.Store {
	return openStore(t, ":memory:")
}

func newUserService(s *store.Store) *UserService {
	return NewUserService(
		s,
		cache.NewMemoryCache[models.User](),
		time.Minute,
		metrics.NewNoopMetrics(),
		zerolog.Nop(),
	)
}
