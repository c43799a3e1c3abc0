package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

// ChangePassword rotates the master password for a user who still knows the
// current one. Because both passwords are in hand, every vault secret is
// re-encrypted under the new key before the credential record flips, so no
// data becomes unreadable.
//
// All outstanding sessions are revoked afterwards; the caller must log in
// again with the new password.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.verifyPassword(ctx, username, oldPassword)
	if err != nil {
		return err
	}

	if err := validator.Apply(
		validator.StrongPassword("password", newPassword, s.passwordStrength),
		validator.NotCommonPassword("password", newPassword),
	); err != nil {
		return err
	}

	s.warnIfBreached(ctx, user.Username, newPassword)

	oldKey, err := keyderive.DeriveWithVersion(oldPassword, user.Salt, user.KDFVersion)
	if err != nil {
		return fmt.Errorf("failed to derive current vault key: %w", err)
	}
	defer keyderive.ClearKey(oldKey)

	newSalt, err := keyderive.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	newKey, err := keyderive.Derive(newPassword, newSalt)
	if err != nil {
		return fmt.Errorf("failed to derive new vault key: %w", err)
	}
	defer keyderive.ClearKey(newKey)

	// Re-wrap before the credential record changes: if re-encryption fails
	// midway the old password still opens the vault.
	if s.rewrapper != nil {
		if err := s.rewrapper.ReencryptAll(ctx, user.ID, oldKey, newKey); err != nil {
			return fmt.Errorf("failed to re-encrypt vault secrets: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdatePasswordAndSalt(ctx, user.ID, string(hash), newSalt, uint8(keyderive.CurrentVersion)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.InfoContext(ctx, "master password changed",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}
