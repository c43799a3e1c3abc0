package session

import "errors"

var (
	// ErrSessionExpired indicates the session has passed its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrNoStore indicates no store was configured.
	ErrNoStore = errors.New("session.no_store")

	// ErrStoreUnavailable indicates the backing store is unreachable.
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
