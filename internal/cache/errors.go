package cache

import "errors"

// ErrCacheMiss is returned by Get for absent or expired keys. Callers
// treat it as "fetch from the source", never as a failure.
var ErrCacheMiss = errors.New("cache: key not found")

var (
	ErrCacheUnavailable = errors.New("cache: backend unavailable")
	ErrInvalidValue     = errors.New("cache: cannot decode cached value")
)
