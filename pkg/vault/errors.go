package vault

import "errors"

var (
	// ErrVaultLocked means no vault key could be established for the caller:
	// unknown user, wrong master password on a mutating operation, or a
	// malformed stored salt. Distinct from an empty vault.
	ErrVaultLocked = errors.New("vault is locked")

	ErrAccountNotFound = errors.New("account not found")
	ErrServiceExists   = errors.New("an account for this service already exists")
	ErrEmptyService    = errors.New("service name is required")
	ErrEmptySecret     = errors.New("secret is required")
)
