package bootstrap

import (
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/auth"
	"github.com/Aiionteam/app.aiion.site/internal/client"
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/directory"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"
	"github.com/Aiionteam/app.aiion.site/internal/store"
	"github.com/Aiionteam/app.aiion.site/internal/token"

	"github.com/rs/zerolog"
)

// serviceSet holds all business services
type serviceSet struct {
	users     *services.UserService
	diaries   *services.DiaryService
	sessions  *services.SessionService
	handshake *services.HandshakeService
	login     *services.LoginService
}

// initializeServices creates all business services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	tokenStore core.TokenStore,
	userCache core.Cache[models.User],
	providers auth.Registry,
	m core.Recorder,
	logger zerolog.Logger,
) (serviceSet, error) {
	users := services.NewUserService(db, userCache, cfg.UserCacheTTL, m, logger)

	dir, err := initializeUserDirectory(cfg, users, logger)
	if err != nil {
		return serviceSet{}, err
	}

	tokens := token.NewLocalTokenProvider(cfg)
	logger.Info().
		Str("token_provider", tokens.Name()).
		Str("issuer", cfg.JWTIssuer).
		Msg("token provider initialized")

	sessions := services.NewSessionService(
		tokens,
		tokenStore,
		cfg.JWTExpiration,
		cfg.RefreshTokenExpiration,
		m,
		logger,
	)

	return serviceSet{
		users:     users,
		diaries:   services.NewDiaryService(db, users, m, logger),
		sessions:  sessions,
		handshake: services.NewHandshakeService(tokenStore, cfg.AuthCodeTTL, m),
		login:     services.NewLoginService(providers, dir, sessions, cfg.FrontendURL, m, logger),
	}, nil
}

// initializeUserDirectory picks where login reconciliation looks users up:
// the local database or a remote user service.
func initializeUserDirectory(
	cfg *config.Config,
	users *services.UserService,
	logger zerolog.Logger,
) (core.UserDirectory, error) {
	if cfg.UserDirectoryMode != config.UserDirectoryModeRemote {
		logger.Info().Msg("user directory: local database")
		return users, nil
	}

	retryClient, err := client.NewRetryClient(client.RetryConfig{
		AuthMode:           cfg.UserServiceAuthMode,
		AuthSecret:         cfg.UserServiceAuthSecret,
		AuthHeader:         cfg.UserServiceAuthHeader,
		Timeout:            cfg.UserServiceTimeout,
		InsecureSkipVerify: cfg.UserServiceInsecureSkipVerify,
		MaxRetries:         cfg.UserServiceMaxRetries,
		RetryDelay:         cfg.UserServiceRetryDelay,
		MaxRetryDelay:      cfg.UserServiceMaxRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user service client: %w", err)
	}

	logger.Info().
		Str("url", cfg.UserServiceURL).
		Str("auth_mode", cfg.UserServiceAuthMode).
		Msg("user directory: remote user service")
	return directory.NewRemoteDirectory(cfg.UserServiceURL, retryClient, logger), nil
}
