package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/async"
	"github.com/dmitrymomot/vaultkit/pkg/email"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/sanitizer"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

const (
	resetTokenLength   = 64
	resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	emailSendTimeout = 15 * time.Second
)

// RequestReset starts the reset flow for a username or email address.
//
// It returns nil whether or not the identifier matched a user: the response
// must not reveal account existence. When a user with a verified email is
// found, a fresh high-entropy token with a short TTL is stored and handed to
// the email sender off the request path.
func (s *Service) RequestReset(ctx context.Context, identifier string) error {
	identifier = sanitizer.TrimToLower(identifier)
	if identifier == "" {
		return nil
	}

	user, err := s.storage.FindByUsername(ctx, identifier)
	if errors.Is(err, ErrUserNotFound) {
		user, err = s.storage.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Email == "" {
		// No delivery channel; the generic response still applies.
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiresAt := time.Now().Add(s.resetTokenTTL)

	if err := s.storage.UpdateResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.sendResetEmail(ctx, user, token)

	s.logger.InfoContext(ctx, "password reset requested",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

// ValidateResetToken checks a token without consuming it, reporting whether
// completion will additionally demand a TOTP code. Unknown and expired
// tokens are indistinguishable.
func (s *Service) ValidateResetToken(ctx context.Context, token string) (*ResetTokenInfo, error) {
	user, err := s.findByValidResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &ResetTokenInfo{RequiresTOTP: user.TOTPEnabled}, nil
}

// CompleteReset consumes a reset token and sets a new master password.
//
// When the account has TOTP enabled a valid code is mandatory. On success the
// user gets a fresh KDF salt and hash, the token is cleared so it can never
// be replayed, and every outstanding session is revoked.
//
// The old master password is unknown here, so previously encrypted vault
// secrets cannot be re-wrapped: they become unreadable under the new key.
// That vault lockout is the accepted tradeoff of a forgotten-password reset;
// users who still know their password should use ChangePassword, which
// re-encrypts everything.
func (s *Service) CompleteReset(ctx context.Context, token, newPassword, totpCode string) error {
	user, err := s.findByValidResetToken(ctx, token)
	if err != nil {
		return err
	}

	if user.TOTPEnabled {
		ok, err := validateTOTPCode(user.TOTPSecret, totpCode)
		if err != nil || !ok {
			return ErrInvalidCredentials
		}
	}

	if err := validator.Apply(
		validator.StrongPassword("password", newPassword, s.passwordStrength),
		validator.NotCommonPassword("password", newPassword),
	); err != nil {
		return err
	}

	s.warnIfBreached(ctx, user.Username, newPassword)

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	salt, err := keyderive.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	if err := s.storage.UpdatePasswordAndSalt(ctx, user.ID, string(hash), salt, uint8(keyderive.CurrentVersion)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.storage.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

// findByValidResetToken resolves a token to its user, collapsing unknown,
// malformed, and expired tokens into one error.
func (s *Service) findByValidResetToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	user, err := s.storage.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	// Expiry is checked at read time, not issuance time, so clock skew is
	// handled in exactly one place.
	if user.ResetToken == "" || time.Now().After(user.ResetTokenExpiresAt) {
		return nil, ErrInvalidOrExpiredToken
	}

	return user, nil
}

// sendResetEmail dispatches the reset email off the request path. Delivery is
// best-effort: a failure is logged but never reported to the requester, since
// that would leak whether the destination exists.
func (s *Service) sendResetEmail(ctx context.Context, user *User, token string) {
	if s.sender == nil {
		return
	}

	params, err := email.NewResetEmail(user.Email, email.ResetEmailData{
		Username: user.Username,
		Token:    token,
		TTL:      s.resetTokenTTL,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to render reset email",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
		return
	}

	// Detached from the request context so delivery survives the response.
	future := async.Async(context.WithoutCancel(ctx), params,
		func(ctx context.Context, p email.SendEmailParams) (struct{}, error) {
			ctx, cancel := context.WithTimeout(ctx, emailSendTimeout)
			defer cancel()
			return struct{}{}, s.sender.SendEmail(ctx, p)
		})

	userID := user.ID.String()
	go func() {
		if _, err := future.Await(); err != nil {
			s.logger.ErrorContext(context.Background(), "failed to send reset email",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("auth"),
			)
		}
	}()
}

// generateResetToken returns a 64-character alphanumeric token from a
// cryptographically secure source.
func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenLength)
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
