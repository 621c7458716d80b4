package auth

import "errors"

var (
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrMissingAccessToken is returned when the token endpoint answers
	// without an access token.
	ErrMissingAccessToken = errors.New("provider returned no access token")

	ErrMissingEmail = errors.New("provider account has no email address")

	ErrUserInfo = errors.New("failed to fetch user info")
)
