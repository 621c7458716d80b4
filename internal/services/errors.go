package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned before any lookup when a required field
	// is blank.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamAuth covers failures talking to the identity provider:
	// code exchange, missing access token, profile fetch.
	ErrUpstreamAuth = errors.New("upstream authentication failed")

	// ErrConflict means no canonical user could be produced for an
	// (email, provider) pair.
	ErrConflict = errors.New("user already exists")

	// ErrNotFoundOrExpired is returned when an authorization code was never
	// registered, has expired or was already consumed.
	ErrNotFoundOrExpired = errors.New("authorization code not found or expired")

	ErrNotFound = errors.New("not found")

	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidCredentials is returned for a bad, expired, revoked or
	// superseded application token.
	ErrInvalidCredentials = errors.New("invalid or expired token")
)

// ConflictError carries the email whose reconciliation failed. It matches
// ErrConflict with errors.Is.
type ConflictError struct {
	Email string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user already exists, email: %s", e.Email)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
