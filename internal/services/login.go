package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/util"

	"github.com/rs/zerolog"
)

// LoginState is a step of the callback pipeline. ErrorRedirected is
// reachable from every other state.
type LoginState string

const (
	StateAwaitingCode      LoginState = "awaiting_code"
	StateCodeReceived      LoginState = "code_received"
	StateProfileResolved   LoginState = "profile_resolved"
	StateUserResolved      LoginState = "user_resolved"
	StateCredentialsIssued LoginState = "credentials_issued"
	StateRedirected        LoginState = "redirected"
	StateErrorRedirected   LoginState = "error_redirected"
)

// LoginCallbackPath is appended to the frontend URL for every outcome.
const LoginCallbackPath = "/login/callback"

// CallbackParams are the query parameters the provider redirects back with.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// LoginOutcome is the terminal result of one login attempt.
type LoginOutcome struct {
	Provider    string
	State       LoginState
	RedirectURL string

	Profile     *core.Profile
	User        *models.User
	Credentials *Credentials

	// Err is set when State is StateErrorRedirected.
	Err error
}

// ProviderLookup resolves a provider name to its client.
type ProviderLookup interface {
	Get(name string) (core.IdentityProvider, bool)
}

// LoginService runs the OAuth callback: exchange the code, fetch the
// profile, reconcile the user, issue credentials and redirect to the
// frontend. It never fails without producing a redirect.
type LoginService struct {
	providers   ProviderLookup
	directory   core.UserDirectory
	sessions    *SessionService
	frontendURL string
	metrics     core.Recorder
	logger      zerolog.Logger
}

func NewLoginService(
	providers ProviderLookup,
	directory core.UserDirectory,
	sessions *SessionService,
	frontendURL string,
	m core.Recorder,
	logger zerolog.Logger,
) *LoginService {
	return &LoginService{
		providers:   providers,
		directory:   directory,
		sessions:    sessions,
		frontendURL: frontendURL,
		metrics:     m,
		logger:      logger.With().Str("component", "login").Logger(),
	}
}

// Provider returns the identity provider registered under name.
func (s *LoginService) Provider(name string) (core.IdentityProvider, error) {
	idp, ok := s.providers.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return idp, nil
}

// HandleCallback drives one callback to a terminal state.
func (s *LoginService) HandleCallback(
	ctx context.Context,
	provider string,
	params CallbackParams,
) *LoginOutcome {
	out := &LoginOutcome{Provider: provider, State: StateAwaitingCode}

	// A code wins over an error parameter sent alongside it.
	if params.Code == "" {
		if params.Error != "" {
			s.logger.Warn().
				Str("provider", provider).
				Str("error", params.Error).
				Str("error_description", params.ErrorDescription).
				Msg("provider returned an error")
			return s.redirectError(out, errors.New(params.Error), params.Error, params.ErrorDescription)
		}
		return s.redirectError(out, ErrInvalidInput, "missing authorization code", "")
	}

	if err := s.Complete(ctx, provider, params.Code, out); err != nil {
		return s.redirectError(out, err, "authentication failed: "+err.Error(), "")
	}

	out.RedirectURL = util.BuildURL(s.frontendURL+LoginCallbackPath,
		util.QueryParam{Key: "provider", Value: provider},
		util.QueryParam{Key: "token", Value: out.Credentials.AccessToken},
		util.QueryParam{Key: "refresh_token", Value: out.Credentials.RefreshToken},
	)
	out.State = StateRedirected
	s.metrics.RecordOAuthCallback(provider, true)
	return out
}

// Complete runs the pipeline from a received code to issued credentials,
// advancing out.State as each step succeeds. It is shared by the browser
// callback and the JSON token endpoint.
func (s *LoginService) Complete(
	ctx context.Context,
	provider, code string,
	out *LoginOutcome,
) error {
	out.State = StateCodeReceived

	idp, err := s.Provider(provider)
	if err != nil {
		return err
	}

	start := time.Now()
	tok, err := idp.ExchangeCode(ctx, code)
	s.metrics.RecordExternalAPICall(provider, time.Since(start))
	s.metrics.RecordLoginStage(provider, "exchange", err == nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}

	start = time.Now()
	profile, err := idp.FetchProfile(ctx, tok)
	s.metrics.RecordExternalAPICall(provider, time.Since(start))
	s.metrics.RecordLoginStage(provider, "profile", err == nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	out.Profile = profile
	out.State = StateProfileResolved

	user, err := s.directory.UpsertOnLogin(ctx, &models.User{
		Name:       profile.Name,
		Email:      profile.Email,
		Nickname:   profile.Nickname,
		Provider:   provider,
		ProviderID: profile.ProviderID,
	})
	s.metrics.RecordLoginStage(provider, "user", err == nil)
	if err != nil {
		return err
	}
	out.User = user
	out.State = StateUserResolved

	creds, err := s.sessions.Issue(ctx, user, provider, profile)
	s.metrics.RecordLoginStage(provider, "credentials", err == nil)
	if err != nil {
		return err
	}
	out.Credentials = creds
	out.State = StateCredentialsIssued

	s.logger.Info().
		Str("provider", provider).
		Uint("user_id", user.ID).
		Msg("login completed")
	return nil
}

func (s *LoginService) redirectError(out *LoginOutcome, cause error, msg, description string) *LoginOutcome {
	s.logger.Error().Err(cause).Str("provider", out.Provider).Str("state", string(out.State)).Msg("login failed")

	out.Err = cause
	out.State = StateErrorRedirected
	out.RedirectURL = s.ErrorRedirectURL(out.Provider, msg, description)
	s.metrics.RecordOAuthCallback(out.Provider, false)
	return out
}

// ErrorRedirectURL builds the frontend URL reporting a failed login.
func (s *LoginService) ErrorRedirectURL(provider, msg, description string) string {
	return util.BuildURL(s.frontendURL+LoginCallbackPath,
		util.QueryParam{Key: "provider", Value: provider},
		util.QueryParam{Key: "error", Value: msg},
		util.QueryParam{Key: "error_description", Value: description},
	)
}
