package core

import (
	"context"
	"time"
)

// TokenStore keeps issued credentials and one-time authorization codes
// with a TTL. Keys are scoped by provider.
type TokenStore interface {
	SaveAccessToken(ctx context.Context, provider, subjectID, token string, ttl time.Duration) error
	SaveRefreshToken(ctx context.Context, provider, subjectID, token string, ttl time.Duration) error
	GetAccessToken(ctx context.Context, provider, subjectID string) (string, error)
	GetRefreshToken(ctx context.Context, provider, subjectID string) (string, error)
	DeleteTokens(ctx context.Context, provider, subjectID string) error

	SaveAuthorizationCode(ctx context.Context, provider, code, state string, ttl time.Duration) error
	// VerifyAndDeleteAuthorizationCode atomically reads and removes the state
	// stored for code. A second call for the same code always misses.
	VerifyAndDeleteAuthorizationCode(ctx context.Context, provider, code string) (string, error)

	Health(ctx context.Context) error
	Close() error
}

// TokenResult is a freshly signed token.
type TokenResult struct {
	TokenString string
	TokenType   string
	ExpiresAt   time.Time
	Claims      map[string]any
}

// TokenValidationResult is the outcome of parsing a signed token.
type TokenValidationResult struct {
	Valid     bool
	Subject   string
	Provider  string
	TokenType string
	ExpiresAt time.Time
	Claims    map[string]any
}

// TokenProvider signs and validates the application's own credentials.
type TokenProvider interface {
	GenerateAccessToken(ctx context.Context, subjectID, provider string, extra map[string]any) (*TokenResult, error)
	GenerateRefreshToken(ctx context.Context, subjectID, provider string) (*TokenResult, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResult, error)
	// ValidateRefreshToken additionally requires the token to be a refresh token.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*TokenValidationResult, error)
	Name() string
}
