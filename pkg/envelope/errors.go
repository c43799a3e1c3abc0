package envelope

import "errors"

var (
	// ErrEncryptionFailed indicates sealing failed.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates the authentication tag did not verify.
	// This is the expected outcome for a key derived from a wrong master
	// password and must be surfaced to callers without further detail.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidCiphertext indicates a truncated blob or an unknown layout version.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrInvalidKeyLength indicates a key that is not 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length: must be 32 bytes")
)
