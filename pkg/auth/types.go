package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/session"
)

// User is the credential record held by the Storage backend.
//
// PasswordHash is the storage hash (bcrypt) and is independent from the vault
// key derivation: Salt and KDFVersion feed the Argon2id vault KDF only, so
// compromising one scheme does not help attack the other.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string // optional, required only for the reset flow
	PasswordHash string
	Salt         []byte
	KDFVersion   keyderive.Version

	TOTPSecret  string // present while enrollment is pending or enabled
	TOTPEnabled bool   // true only after one successful setup verification

	ResetToken          string // set and cleared together with ResetTokenExpiresAt
	ResetTokenExpiresAt time.Time

	CreatedAt time.Time
}

// TOTPPending reports whether an enrollment was started but not yet verified.
func (u *User) TOTPPending() bool {
	return u.TOTPSecret != "" && !u.TOTPEnabled
}

// LoginParams carries one login attempt through the engine.
type LoginParams struct {
	Username string
	Password string
	TOTPCode string // optional; empty triggers TwoFactorRequired when enabled
	SourceIP string // rate-limit source identifier
}

// LoginResult is the outcome of a successful or intermediate login.
//
// TwoFactorRequired is a valid intermediate state, not a failure: the
// password was correct but a TOTP code must be supplied to finish.
type LoginResult struct {
	TwoFactorRequired bool
	Session           *session.Session
}

// TOTPEnrollment is returned when a user begins authenticator enrollment.
// The secret stays pending until VerifyTOTPSetup succeeds once.
type TOTPEnrollment struct {
	Secret          string // Base32 secret for manual entry
	ProvisioningURI string // otpauth:// URI
	QRCode          string // data-URI PNG of the provisioning URI
}

// ResetTokenInfo is the result of validating a reset token without
// consuming it.
type ResetTokenInfo struct {
	RequiresTOTP bool
}
