package bootstrap

import (
	"errors"
	"fmt"

	"github.com/Aiionteam/app.aiion.site/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateProviderConfig(cfg); err != nil {
		return fmt.Errorf("invalid oauth configuration: %w", err)
	}
	return nil
}

// validateProviderConfig checks the redirect URL of every provider that has
// credentials. Providers without credentials are skipped at startup.
func validateProviderConfig(cfg *config.Config) error {
	if googleConfigured(cfg) && cfg.GoogleOAuthRedirectURL == "" {
		return errors.New("GOOGLE_REDIRECT_URI is required when Google OAuth is enabled")
	}
	if githubConfigured(cfg) && cfg.GitHubOAuthRedirectURL == "" {
		return errors.New("GITHUB_REDIRECT_URL is required when GitHub OAuth is enabled")
	}
	return nil
}

func googleConfigured(cfg *config.Config) bool {
	return cfg.GoogleOAuthEnabled && cfg.GoogleClientID != "" && cfg.GoogleClientSecret != ""
}

func githubConfigured(cfg *config.Config) bool {
	return cfg.GitHubOAuthEnabled && cfg.GitHubClientID != "" && cfg.GitHubClientSecret != ""
}
