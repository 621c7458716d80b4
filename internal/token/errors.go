package token

import "errors"

var ErrTokenGeneration = errors.New("failed to sign token")

// Validation failures. Expiry has its own sentinel.
var (
	ErrInvalidToken        = errors.New("invalid access token")
	ErrExpiredToken        = errors.New("access token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token expired")
)
