package bootstrap

import (
	"context"
	"net/http"

	"github.com/Aiionteam/app.aiion.site/internal/auth"
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger zerolog.Logger

	// Core infrastructure
	DB                 *store.Store
	RedisClient        *redis.Client
	TokenStore         core.TokenStore
	MetricsRecorder    core.Recorder
	MetricsCache       core.Cache[int64]
	MetricsCacheCloser func() error
	UserCache          core.Cache[models.User]
	UserCacheCloser    func() error

	// Services
	Providers auth.Registry
	Services  serviceSet

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application. It returns once the server
// has shut down.
func Run(cfg *config.Config, logger zerolog.Logger) error {
	app := &Application{Config: cfg, Logger: logger}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(context.Background()); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()
	return nil
}

func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}
	app.Logger.Info().Str("driver", app.DB.Driver()).Msg("database initialized")

	app.RedisClient, err = initializeRedisClient(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	app.TokenStore, err = initializeTokenStore(app.Config, app.RedisClient)
	if err != nil {
		return err
	}
	app.Logger.Info().Str("type", app.Config.TokenStoreType).Msg("token store initialized")

	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)
	app.MetricsCache, app.MetricsCacheCloser, err = initializeMetricsCache(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	app.UserCache, app.UserCacheCloser, err = initializeUserCache(ctx, app.Config, app.Logger)
	return err
}

func (app *Application) initializeBusinessLayer() error {
	httpClient, err := createOAuthHTTPClient(app.Config, app.Logger)
	if err != nil {
		return err
	}
	app.Providers = initializeOAuthProviders(app.Config, httpClient, app.Logger)

	app.Services, err = initializeServices(
		app.Config,
		app.DB,
		app.TokenStore,
		app.UserCache,
		app.Providers,
		app.MetricsRecorder,
		app.Logger,
	)
	return err
}

func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(app.Services, app.Logger)

	var err error
	app.Router, err = setupRouter(
		app.Config,
		app.DB,
		app.TokenStore,
		app.HandlerSet,
		app.Services.sessions,
		app.MetricsRecorder,
		app.RedisClient,
		app.Logger,
	)
	if err != nil {
		return err
	}

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// closeInfrastructure releases whatever was opened before a failed startup.
func (app *Application) closeInfrastructure() {
	if app.UserCacheCloser != nil {
		_ = app.UserCacheCloser()
	}
	if app.MetricsCacheCloser != nil {
		_ = app.MetricsCacheCloser()
	}
	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
	if app.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.Config.DBCloseTimeout)
		defer cancel()
		_ = app.DB.Close(ctx)
	}
}

func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server, app.Logger)
	addServerShutdownJob(m, app.Server, app.Config, app.Logger)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.MetricsCache, app.Logger)
	addCacheCleanupJob(m, "metrics", app.MetricsCacheCloser, app.Config.CacheCloseTimeout, app.Logger)
	addCacheCleanupJob(m, "user", app.UserCacheCloser, app.Config.CacheCloseTimeout, app.Logger)
	addRedisClientShutdownJob(m, app.RedisClient, app.Config.RedisCloseTimeout, app.Logger)
	addDatabaseShutdownJob(m, app.DB, app.Config, app.Logger)

	<-m.Done()
}
