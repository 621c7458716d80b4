package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server, logger zerolog.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			logger.Info().Str("addr", srv.Addr).Msg("http server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("failed to start server")
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(
	m *graceful.Manager,
	srv *http.Server,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info().Msg("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server forced to shutdown")
			return err
		}

		logger.Info().Msg("server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(
	m *graceful.Manager,
	redisClient *redis.Client,
	timeout time.Duration,
	logger zerolog.Logger,
) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.Info().Msg("closing redis connection...")
		if err := closeWithTimeout(redisClient.Close, timeout); err != nil {
			logger.Error().Err(err).Msg("error closing redis client")
			return err
		}
		logger.Info().Msg("redis connection closed")
		return nil
	})
}

// addDatabaseShutdownJob closes the database pool.
func addDatabaseShutdownJob(
	m *graceful.Manager,
	db *store.Store,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	m.AddShutdownJob(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DBCloseTimeout)
		defer cancel()

		if err := db.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("error closing database")
			return err
		}
		logger.Info().Msg("database closed")
		return nil
	})
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db core.MetricsStore,
	recorder core.Recorder,
	metricsCache core.Cache[int64],
	logger zerolog.Logger,
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || metricsCache == nil {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		cacheWrapper := metrics.NewCacheWrapper(db, metricsCache)
		errLog := newErrorLogger(logger, 5*time.Minute)

		// Update immediately on startup
		updateGauges(ctx, cacheWrapper, recorder, cfg.MetricsGaugeUpdateInterval, errLog)

		for {
			select {
			case <-ticker.C:
				updateGauges(ctx, cacheWrapper, recorder, cfg.MetricsGaugeUpdateInterval, errLog)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

func updateGauges(
	ctx context.Context,
	cacheWrapper *metrics.CacheWrapper,
	recorder core.Recorder,
	ttl time.Duration,
	errLog *errorLogger,
) {
	if err := cacheWrapper.UpdateGauges(ctx, recorder, ttl); err != nil {
		errLog.logIfNeeded("gauge_update", err)
	}
}

// addCacheCleanupJob adds cache cleanup on shutdown
func addCacheCleanupJob(
	m *graceful.Manager,
	name string,
	closer func() error,
	timeout time.Duration,
	logger zerolog.Logger,
) {
	if closer == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closeWithTimeout(closer, timeout); err != nil {
			logger.Error().Err(err).Str("cache", name).Msg("error closing cache")
		} else {
			logger.Info().Str("cache", name).Msg("cache closed")
		}
		return nil
	})
}

var errCloseTimeout = errors.New("close timed out")

// closeWithTimeout runs closer and gives up waiting after timeout. A
// non-positive timeout waits indefinitely.
func closeWithTimeout(closer func() error, timeout time.Duration) error {
	if timeout <= 0 {
		return closer()
	}

	done := make(chan error, 1)
	go func() { done <- closer() }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return errCloseTimeout
	}
}

// errorLogger logs a failing operation at most once per window.
type errorLogger struct {
	mu              sync.Mutex
	logger          zerolog.Logger
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
	now             func() time.Time
}

func newErrorLogger(logger zerolog.Logger, window time.Duration) *errorLogger {
	return &errorLogger{
		logger:          logger,
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: window,
		now:             time.Now,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether
// the error was logged.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if last, ok := e.lastErrorTimes[operation]; ok && now.Sub(last) < e.rateLimitWindow {
		return false
	}
	e.lastErrorTimes[operation] = now
	e.logger.Error().
		Err(err).
		Str("operation", operation).
		Dur("suppress_for", e.rateLimitWindow).
		Msg("database query failed")
	return true
}
