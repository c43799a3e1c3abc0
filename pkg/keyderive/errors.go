package keyderive

import "errors"

var (
	// ErrInvalidSalt indicates a salt of the wrong length or encoding. This is
	// the only input error derivation can produce.
	ErrInvalidSalt = errors.New("invalid salt")

	// ErrUnknownVersion indicates a derivation version with no registered parameters.
	ErrUnknownVersion = errors.New("unknown key derivation version")

	// ErrFailedToGenerateSalt indicates the system RNG failed.
	ErrFailedToGenerateSalt = errors.New("failed to generate salt")
)
