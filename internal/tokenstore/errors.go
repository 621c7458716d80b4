package tokenstore

import "errors"

var (
	// ErrNotFound is returned when a key is absent or its TTL has elapsed.
	ErrNotFound = errors.New("tokenstore: not found or expired")

	// ErrInvalidTTL rejects non-positive lifetimes; every entry must expire.
	ErrInvalidTTL = errors.New("tokenstore: ttl must be positive")

	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("tokenstore: backend unavailable")
)
