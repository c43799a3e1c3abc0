package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/vaultkit/pkg/envelope"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
)

// ReencryptAll re-wraps every entry of one user from oldKey to newKey. Used
// by the authentication engine during a master password change, while both
// passwords are still in hand.
//
// Any entry that fails to open under oldKey aborts the whole run before
// anything is written back, so a partially re-keyed vault cannot occur from
// a bad old key. Write failures midway are reported; entries already written
// remain under the new key and open fine once the password change lands.
func (s *Service) ReencryptAll(ctx context.Context, userID uuid.UUID, oldKey, newKey []byte) error {
	accounts, err := s.storage.AccountsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	rewrapped := make([][]byte, len(accounts))
	for i, acc := range accounts {
		plaintext, err := envelope.Decrypt(acc.EncryptedSecret, oldKey)
		if err != nil {
			return fmt.Errorf("entry %q would not open under the current key: %w", acc.Service, err)
		}
		blob, err := envelope.Encrypt(plaintext, newKey)
		if err != nil {
			return fmt.Errorf("failed to re-encrypt entry %q: %w", acc.Service, err)
		}
		rewrapped[i] = blob
	}

	for i, acc := range accounts {
		acc.EncryptedSecret = rewrapped[i]
		if err := s.storage.UpdateAccount(ctx, acc); err != nil {
			return fmt.Errorf("failed to store re-encrypted entry %q: %w", acc.Service, err)
		}
	}

	s.logger.InfoContext(ctx, "vault re-encrypted",
		logger.UserID(userID.String()),
		logger.Component("vault"),
	)

	return nil
}
