package token

import (
	"context"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret-key-for-jwt-signing",
		JWTIssuer:              "aiion-test",
		JWTExpiration:          3600 * time.Second,
		RefreshTokenExpiration: 2592000 * time.Second,
	}
}

func TestLocalTokenProvider_GenerateAccessToken(t *testing.T) {
	provider := NewLocalTokenProvider(testConfig())

	result, err := provider.GenerateAccessToken(context.Background(), "42", "google", map[string]any{
		"app_user_id": uint(42),
		"email":       "a@b.com",
		"type":        "refresh", // reserved, must be ignored
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.TokenString)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)
	assert.Equal(t, "42", result.Claims["sub"])
	assert.Equal(t, "google", result.Claims["provider"])
	assert.Equal(t, "access", result.Claims["type"])
	assert.Equal(t, "a@b.com", result.Claims["email"])
	assert.Equal(t, "aiion-test", result.Claims["iss"])
	assert.NotEmpty(t, result.Claims["jti"])
}

func TestLocalTokenProvider_RefreshLifetime(t *testing.T) {
	provider := NewLocalTokenProvider(testConfig())

	result, err := provider.GenerateRefreshToken(context.Background(), "42", "google")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), result.ExpiresAt, 5*time.Second)
	assert.Equal(t, "refresh", result.Claims["type"])
}

func TestLocalTokenProvider_ValidateToken_Success(t *testing.T) {
	provider := NewLocalTokenProvider(testConfig())
	ctx := context.Background()

	gen, err := provider.GenerateAccessToken(ctx, "42", "google", map[string]any{"nickname": "A"})
	require.NoError(t, err)

	val, err := provider.ValidateToken(ctx, gen.TokenString)
	require.NoError(t, err)
	assert.True(t, val.Valid)
	assert.Equal(t, "42", val.Subject)
	assert.Equal(t, "google", val.Provider)
	assert.Equal(t, UseAccess, val.TokenType)
	assert.Equal(t, "A", val.Claims["nickname"])
	assert.WithinDuration(t, gen.ExpiresAt, val.ExpiresAt, time.Second)
}

func TestLocalTokenProvider_ValidateToken_Failures(t *testing.T) {
	provider := NewLocalTokenProvider(testConfig())
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		_, err := provider.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewLocalTokenProvider(&config.Config{
			JWTSecret:     "another-secret",
			JWTExpiration: time.Hour,
		})
		gen, err := other.GenerateAccessToken(ctx, "42", "google", nil)
		require.NoError(t, err)

		_, err = provider.ValidateToken(ctx, gen.TokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "42", "provider": "google", "exp": time.Now().Add(time.Hour).Unix(),
		})
		s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = provider.ValidateToken(ctx, s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"provider": "google", "exp": time.Now().Add(time.Hour).Unix(),
		})
		s, err := tok.SignedString([]byte(testConfig().JWTSecret))
		require.NoError(t, err)

		_, err = provider.ValidateToken(ctx, s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		gen, err := provider.GenerateAccessToken(ctx, "42", "google", nil)
		require.NoError(t, err)

		provider.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { provider.now = time.Now }()

		_, err = provider.ValidateToken(ctx, gen.TokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestLocalTokenProvider_ValidateRefreshToken(t *testing.T) {
	provider := NewLocalTokenProvider(testConfig())
	ctx := context.Background()

	refresh, err := provider.GenerateRefreshToken(ctx, "42", "google")
	require.NoError(t, err)
	val, err := provider.ValidateRefreshToken(ctx, refresh.TokenString)
	require.NoError(t, err)
	assert.Equal(t, UseRefresh, val.TokenType)

	access, err := provider.GenerateAccessToken(ctx, "42", "google", nil)
	require.NoError(t, err)
	_, err = provider.ValidateRefreshToken(ctx, access.TokenString)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "an access token is not a refresh token")

	provider.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	_, err = provider.ValidateRefreshToken(ctx, refresh.TokenString)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}
