package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/Aiionteam/app.aiion.site/internal/auth"
	"github.com/Aiionteam/app.aiion.site/internal/client"
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/models"

	"github.com/appleboy/go-httpclient"
	"github.com/rs/zerolog"
)

// initializeOAuthProviders initializes configured OAuth providers
func initializeOAuthProviders(
	cfg *config.Config,
	httpClient *http.Client,
	logger zerolog.Logger,
) auth.Registry {
	providers := auth.Registry{}

	// Google OAuth
	switch {
	case !cfg.GoogleOAuthEnabled:
		// Skip Google OAuth
	case !googleConfigured(cfg):
		logger.Warn().Msg("Google OAuth enabled but GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing")
	default:
		providers[models.ProviderGoogle] = auth.NewGoogleProvider(auth.ProviderConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleOAuthRedirectURL,
			Scopes:       cfg.GoogleOAuthScopes,
		}, auth.GoogleEndpoints{
			IssuerURL:   cfg.GoogleIssuerURL,
			AuthURL:     cfg.GoogleAuthURL,
			TokenURL:    cfg.GoogleTokenURL,
			UserInfoURL: cfg.GoogleUserInfoURL,
		}, httpClient)
		logger.Info().Str("redirect", cfg.GoogleOAuthRedirectURL).Msg("Google OAuth configured")
	}

	// GitHub OAuth
	switch {
	case !cfg.GitHubOAuthEnabled:
		// Skip GitHub OAuth
	case !githubConfigured(cfg):
		logger.Warn().Msg("GitHub OAuth enabled but GITHUB_CLIENT_ID or GITHUB_CLIENT_SECRET missing")
	default:
		providers[models.ProviderGitHub] = auth.NewGitHubProvider(auth.ProviderConfig{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubOAuthRedirectURL,
			Scopes:       cfg.GitHubOAuthScopes,
		}, cfg.GitHubAPIURL, httpClient)
		logger.Info().Str("redirect", cfg.GitHubOAuthRedirectURL).Msg("GitHub OAuth configured")
	}

	if len(providers) == 0 {
		logger.Warn().Msg("no OAuth provider configured; login endpoints will answer 404")
	}
	for _, name := range providers.Names() {
		p := providers[name]
		logger.Info().
			Str("provider", p.Name()).
			Str("display_name", p.DisplayName()).
			Msg("OAuth provider enabled")
	}
	return providers
}

// createOAuthHTTPClient creates an HTTP client for OAuth requests with optimized connection pool
func createOAuthHTTPClient(cfg *config.Config, logger zerolog.Logger) (*http.Client, error) {
	if cfg.OAuthInsecureSkipVerify {
		logger.Warn().Msg("OAuth TLS verification is disabled (OAUTH_INSECURE_SKIP_VERIFY=true)")
	}

	httpClient, err := httpclient.NewClient(
		httpclient.WithTimeout(cfg.OAuthTimeout),
		httpclient.WithTransport(client.CreateOptimizedTransport(cfg.OAuthInsecureSkipVerify)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth HTTP client: %w", err)
	}
	return httpClient, nil
}
