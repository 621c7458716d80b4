package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ core.TokenProvider = (*LocalTokenProvider)(nil)

// reservedClaims cannot be overridden by caller-supplied extras.
var reservedClaims = map[string]struct{}{
	"sub": {}, "provider": {}, "type": {}, "exp": {}, "iat": {}, "iss": {}, "jti": {},
}

// LocalTokenProvider signs and validates HS256 JWTs with the shared secret.
type LocalTokenProvider struct {
	config *config.Config
	now    func() time.Time
}

func NewLocalTokenProvider(cfg *config.Config) *LocalTokenProvider {
	return &LocalTokenProvider{config: cfg, now: time.Now}
}

func (p *LocalTokenProvider) generateJWT(
	subjectID, provider, tokenUse string,
	lifetime time.Duration,
	extra map[string]any,
) (*Result, error) {
	issuedAt := p.now()
	expiresAt := issuedAt.Add(lifetime)

	claims := jwt.MapClaims{}
	for k, v := range extra {
		if _, reserved := reservedClaims[k]; !reserved {
			claims[k] = v
		}
	}
	claims["sub"] = subjectID
	claims["provider"] = provider
	claims["type"] = tokenUse
	claims["exp"] = expiresAt.Unix()
	claims["iat"] = issuedAt.Unix()
	claims["iss"] = p.config.JWTIssuer
	claims["jti"] = uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{
		TokenString: tokenString,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
		Claims:      claims,
	}, nil
}

// GenerateAccessToken signs a short-lived access token. extra carries
// profile claims such as app_user_id, email and nickname.
func (p *LocalTokenProvider) GenerateAccessToken(
	ctx context.Context,
	subjectID, provider string,
	extra map[string]any,
) (*Result, error) {
	return p.generateJWT(subjectID, provider, UseAccess, p.config.JWTExpiration, extra)
}

func (p *LocalTokenProvider) GenerateRefreshToken(
	ctx context.Context,
	subjectID, provider string,
) (*Result, error) {
	return p.generateJWT(subjectID, provider, UseRefresh, p.config.RefreshTokenExpiration, nil)
}

// ValidateToken verifies signature and expiry of either token type.
func (p *LocalTokenProvider) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*ValidationResult, error) {
	return p.parse(tokenString, ErrInvalidToken, ErrExpiredToken)
}

// ValidateRefreshToken additionally requires type=refresh.
func (p *LocalTokenProvider) ValidateRefreshToken(
	ctx context.Context,
	tokenString string,
) (*ValidationResult, error) {
	result, err := p.parse(tokenString, ErrInvalidRefreshToken, ErrExpiredRefreshToken)
	if err != nil {
		return nil, err
	}
	if result.TokenType != UseRefresh {
		return nil, ErrInvalidRefreshToken
	}
	return result, nil
}

func (p *LocalTokenProvider) parse(
	tokenString string,
	invalidErr, expiredErr error,
) (*ValidationResult, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.config.JWTSecret), nil
	}, jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, expiredErr
		}
		return nil, fmt.Errorf("%w: %v", invalidErr, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, invalidErr
	}

	subject, _ := claims["sub"].(string)
	provider, _ := claims["provider"].(string)
	tokenUse, _ := claims["type"].(string)
	if subject == "" || provider == "" {
		return nil, invalidErr
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, invalidErr
	}

	return &ValidationResult{
		Valid:     true,
		Subject:   subject,
		Provider:  provider,
		TokenType: tokenUse,
		ExpiresAt: exp.Time,
		Claims:    claims,
	}, nil
}

// Name returns provider name for logging
func (p *LocalTokenProvider) Name() string {
	return "local"
}
