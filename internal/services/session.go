package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"

	"github.com/rs/zerolog"
)

// Credentials is the pair handed to the frontend after login or refresh.
type Credentials struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}

// SessionService mints the application's credential pair and keeps the
// current pair per (provider, subject) in the token store.
type SessionService struct {
	tokens     core.TokenProvider
	store      core.TokenStore
	accessTTL  time.Duration
	refreshTTL time.Duration
	metrics    core.Recorder
	logger     zerolog.Logger
}

func NewSessionService(
	tokens core.TokenProvider,
	tokenStore core.TokenStore,
	accessTTL, refreshTTL time.Duration,
	m core.Recorder,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		tokens:     tokens,
		store:      tokenStore,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		metrics:    m,
		logger:     logger.With().Str("component", "session").Logger(),
	}
}

// Issue signs an access and a refresh token for user and stores both.
// A token store failure fails the call.
func (s *SessionService) Issue(
	ctx context.Context,
	user *models.User,
	provider string,
	profile *core.Profile,
) (*Credentials, error) {
	extra := map[string]any{
		"app_user_id": user.ID,
		"email":       user.Email,
		"nickname":    user.Nickname,
	}
	if profile != nil && profile.Name != "" {
		extra["name"] = profile.Name
	}
	return s.issue(ctx, user.SubjectID(), provider, extra)
}

func (s *SessionService) issue(
	ctx context.Context,
	subjectID, provider string,
	extra map[string]any,
) (*Credentials, error) {
	start := time.Now()
	access, err := s.tokens.GenerateAccessToken(ctx, subjectID, provider, extra)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	s.metrics.RecordTokenIssued("access", provider, time.Since(start))

	start = time.Now()
	refresh, err := s.tokens.GenerateRefreshToken(ctx, subjectID, provider)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	s.metrics.RecordTokenIssued("refresh", provider, time.Since(start))

	if err := s.store.SaveAccessToken(ctx, provider, subjectID, access.TokenString, s.accessTTL); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}
	if err := s.store.SaveRefreshToken(ctx, provider, subjectID, refresh.TokenString, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Credentials{
		AccessToken:      access.TokenString,
		RefreshToken:     refresh.TokenString,
		TokenType:        access.TokenType,
		ExpiresIn:        int64(s.accessTTL.Seconds()),
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}

// Validate checks an access token's signature, its provider and that it is
// still the stored access token for its subject.
func (s *SessionService) Validate(
	ctx context.Context,
	provider, accessToken string,
) (*core.TokenValidationResult, error) {
	start := time.Now()
	result, err := s.tokens.ValidateToken(ctx, accessToken)
	if err != nil {
		s.metrics.RecordTokenValidation("invalid", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if result.Provider != provider || result.TokenType != "access" {
		s.metrics.RecordTokenValidation("invalid", time.Since(start))
		return nil, ErrInvalidCredentials
	}

	stored, err := s.store.GetAccessToken(ctx, provider, result.Subject)
	if err != nil || stored != accessToken {
		s.metrics.RecordTokenValidation("revoked", time.Since(start))
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordTokenValidation("valid", time.Since(start))
	return result, nil
}

// Refresh exchanges the current refresh token for a new pair. Profile
// claims are carried over from the stored access token while it is still
// valid.
func (s *SessionService) Refresh(
	ctx context.Context,
	provider, refreshToken string,
) (*Credentials, error) {
	creds, err := s.refresh(ctx, provider, refreshToken)
	s.metrics.RecordTokenRefresh(err == nil)
	return creds, err
}

func (s *SessionService) refresh(
	ctx context.Context,
	provider, refreshToken string,
) (*Credentials, error) {
	result, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if result.Provider != provider {
		return nil, ErrInvalidCredentials
	}

	stored, err := s.store.GetRefreshToken(ctx, provider, result.Subject)
	if err != nil || stored != refreshToken {
		return nil, ErrInvalidCredentials
	}

	appUserID, _ := strconv.ParseUint(result.Subject, 10, 64)
	extra := map[string]any{"app_user_id": uint(appUserID)}
	if prev, err := s.store.GetAccessToken(ctx, provider, result.Subject); err == nil {
		if claims, err := s.tokens.ValidateToken(ctx, prev); err == nil {
			for _, k := range []string{"email", "nickname", "name"} {
				if v, ok := claims.Claims[k]; ok {
					extra[k] = v
				}
			}
		}
	}

	return s.issue(ctx, result.Subject, provider, extra)
}

// Revoke deletes the stored pair of the access token's subject.
func (s *SessionService) Revoke(ctx context.Context, provider, accessToken string) error {
	result, err := s.Validate(ctx, provider, accessToken)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTokens(ctx, provider, result.Subject); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	s.metrics.RecordLogout(provider)
	s.logger.Info().Str("provider", provider).Str("subject", result.Subject).Msg("tokens revoked")
	return nil
}

// IsInvalidCredentials reports whether err is an authentication failure
// rather than an internal one.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
