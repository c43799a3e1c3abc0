package ratelimit

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrKeyRequired indicates an empty source identifier.
	ErrKeyRequired = errors.New("key is required")

	// ErrStoreRequired indicates that no backing store was provided.
	ErrStoreRequired = errors.New("store is required")

	// ErrStoreUnavailable indicates that the store backend is unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")
)
