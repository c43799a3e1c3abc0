// Package envelope provides authenticated encryption for vaulted account
// secrets under a key derived from the owner's master password.
//
// Blobs are self-describing: a one-byte layout version, the random per-call
// nonce, and the AES-256-GCM ciphertext with its tag. Nothing else is needed
// to decrypt besides the key itself, so stored records survive key-derivation
// parameter upgrades.
//
// Decrypt distinguishes two failure conditions and nothing more:
// ErrDecryptionFailed (tag mismatch, i.e. wrong key — the normal result of a
// wrong master password) and ErrInvalidCiphertext (corrupted or truncated
// record). Callers must not leak which check failed to end users.
//
// # Usage
//
//	key, _ := keyderive.Derive(masterPassword, salt)
//	blob, err := envelope.EncryptString("s3cret", key)
//	...
//	plain, err := envelope.DecryptString(blob, key)
//	if errors.Is(err, envelope.ErrDecryptionFailed) {
//	    // wrong master password
//	}
package envelope
