package vault

import (
	"time"

	"github.com/google/uuid"
)

// Account is one stored per-service credential, owned by exactly one user.
// EncryptedSecret is an opaque self-describing blob produced by the envelope
// cipher under the owner's vault key; plaintext never touches storage or logs.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Service         string // unique per owning user
	AccountUsername string
	EncryptedSecret []byte
	Has2FA          bool // informational
	LastChanged     time.Time
	StrengthScore   int // 0-5
	BreachFlag      bool
	CreatedAt       time.Time
}

// DecryptedAccount is an Account opened for the caller. When the supplied
// master password cannot open an entry, DecryptFailed is set and Secret stays
// empty instead of the whole listing failing.
type DecryptedAccount struct {
	Account
	Secret        string
	DecryptFailed bool
}

// AddAccountParams describes a new vault entry.
type AddAccountParams struct {
	Service         string
	AccountUsername string
	Secret          string
	Has2FA          bool
}

// UpdateAccountParams carries a partial update. Nil fields stay unchanged;
// setting Secret re-encrypts and refreshes LastChanged, the strength score,
// and the breach flag.
type UpdateAccountParams struct {
	Service         string // identifies the entry
	AccountUsername *string
	Secret          *string
	Has2FA          *bool
}

// PasswordAge reports how old one entry's secret is.
type PasswordAge struct {
	Service     string
	LastChanged time.Time
	Age         time.Duration
	Stale       bool // Age exceeded the configured maximum
}
