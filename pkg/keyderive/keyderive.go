package keyderive

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// MinSaltSize is the minimum accepted salt length in bytes.
	MinSaltSize = 16

	// SaltSize is the length of salts produced by NewSalt.
	SaltSize = 32

	// KeySize is the length of derived keys, matching AES-256.
	KeySize = 32
)

// Version identifies a derivation parameter set. Stored alongside the salt
// so parameters can be raised later without breaking existing records.
type Version uint8

const (
	// VersionArgon2idV1 is Argon2id with time=1, memory=64MiB, threads=4.
	VersionArgon2idV1 Version = 1

	// CurrentVersion is used for all newly derived keys.
	CurrentVersion = VersionArgon2idV1
)

type params struct {
	time    uint32
	memory  uint32
	threads uint8
}

var versionParams = map[Version]params{
	VersionArgon2idV1: {time: 1, memory: 64 * 1024, threads: 4},
}

// NewSalt returns a fresh random salt. A salt is generated once per user at
// creation time and is never regenerated implicitly.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Join(ErrFailedToGenerateSalt, err)
	}
	return salt, nil
}

// ValidateSalt checks that a salt is usable for derivation.
func ValidateSalt(salt []byte) error {
	if len(salt) < MinSaltSize {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidSalt, len(salt), MinSaltSize)
	}
	return nil
}

// Derive turns a master password and a per-user salt into a 32-byte symmetric
// key using the current parameter set. The result is deterministic for the
// same inputs. Derivation never fails on password content, only on a
// malformed salt.
func Derive(password string, salt []byte) ([]byte, error) {
	return DeriveWithVersion(password, salt, CurrentVersion)
}

// DeriveWithVersion derives a key using a specific parameter set so that
// records written under older versions remain decryptable.
func DeriveWithVersion(password string, salt []byte, version Version) ([]byte, error) {
	if err := ValidateSalt(salt); err != nil {
		return nil, err
	}
	p, ok := versionParams[version]
	if !ok {
		return nil, fmt.Errorf("%w: version %d", ErrUnknownVersion, version)
	}
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, KeySize), nil
}

// ClearKey zeroes key material once the caller is done with it.
func ClearKey(key []byte) {
	for i := range key {
		key[i] = 0
	}
}
