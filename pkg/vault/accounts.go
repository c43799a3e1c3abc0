package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/envelope"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/sanitizer"
)

// AddAccount stores a new per-service credential encrypted under the
// caller's vault key.
func (s *Service) AddAccount(ctx context.Context, username, masterPassword string, params AddAccountParams) (*Account, error) {
	params.Service = sanitizer.NormalizeServiceName(params.Service)
	if params.Service == "" {
		return nil, ErrEmptyService
	}
	if params.Secret == "" {
		return nil, ErrEmptySecret
	}

	user, key, err := s.unlockForWrite(ctx, username, masterPassword)
	if err != nil {
		return nil, err
	}
	defer keyderive.ClearKey(key)

	if _, err := s.storage.AccountByService(ctx, user.ID, params.Service); err == nil {
		return nil, ErrServiceExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	blob, err := envelope.Encrypt([]byte(params.Secret), key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	score, breached := s.scoreAndFlag(ctx, params.Secret)

	account := &Account{
		ID:              uuid.New(),
		UserID:          user.ID,
		Service:         params.Service,
		AccountUsername: params.AccountUsername,
		EncryptedSecret: blob,
		Has2FA:          params.Has2FA,
		LastChanged:     time.Now(),
		StrengthScore:   score,
		BreachFlag:      breached,
		CreatedAt:       time.Now(),
	}

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}

	s.logger.InfoContext(ctx, "vault entry added",
		logger.UserID(user.ID.String()),
		logger.Component("vault"),
	)

	return account, nil
}

// Accounts lists the caller's entries decrypted under the supplied master
// password. A wrong password does not fail the call: each unopenable entry
// comes back with DecryptFailed set, so callers can distinguish "no
// accounts" from "could not unlock".
func (s *Service) Accounts(ctx context.Context, username, masterPassword string) ([]DecryptedAccount, error) {
	user, key, err := s.deriveKey(ctx, username, masterPassword)
	if err != nil {
		return nil, err
	}
	defer keyderive.ClearKey(key)

	stored, err := s.storage.AccountsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	out := make([]DecryptedAccount, 0, len(stored))
	for _, acc := range stored {
		entry := DecryptedAccount{Account: *acc}
		plaintext, err := envelope.Decrypt(acc.EncryptedSecret, key)
		if err != nil {
			entry.DecryptFailed = true
			s.logger.WarnContext(ctx, "vault entry failed to decrypt",
				logger.UserID(user.ID.String()),
				logger.Component("vault"),
			)
		} else {
			entry.Secret = string(plaintext)
		}
		out = append(out, entry)
	}

	return out, nil
}

// UpdateAccount applies a partial update to one entry. Changing the secret
// re-encrypts it and refreshes LastChanged, the strength score, and the
// breach flag.
func (s *Service) UpdateAccount(ctx context.Context, username, masterPassword string, params UpdateAccountParams) (*Account, error) {
	params.Service = sanitizer.NormalizeServiceName(params.Service)
	if params.Service == "" {
		return nil, ErrEmptyService
	}

	user, key, err := s.unlockForWrite(ctx, username, masterPassword)
	if err != nil {
		return nil, err
	}
	defer keyderive.ClearKey(key)

	account, err := s.storage.AccountByService(ctx, user.ID, params.Service)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if params.AccountUsername != nil {
		account.AccountUsername = *params.AccountUsername
	}
	if params.Has2FA != nil {
		account.Has2FA = *params.Has2FA
	}
	if params.Secret != nil {
		if *params.Secret == "" {
			return nil, ErrEmptySecret
		}
		blob, err := envelope.Encrypt([]byte(*params.Secret), key)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt secret: %w", err)
		}
		score, breached := s.scoreAndFlag(ctx, *params.Secret)
		account.EncryptedSecret = blob
		account.StrengthScore = score
		account.BreachFlag = breached
		account.LastChanged = time.Now()
	}

	if err := s.storage.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.InfoContext(ctx, "vault entry updated",
		logger.UserID(user.ID.String()),
		logger.Component("vault"),
	)

	return account, nil
}

// DeleteAccount removes one entry. The master password must verify; deletion
// is a mutating operation.
func (s *Service) DeleteAccount(ctx context.Context, username, masterPassword, service string) error {
	service = sanitizer.NormalizeServiceName(service)
	if service == "" {
		return ErrEmptyService
	}

	user, key, err := s.unlockForWrite(ctx, username, masterPassword)
	if err != nil {
		return err
	}
	keyderive.ClearKey(key)

	if err := s.storage.DeleteAccount(ctx, user.ID, service); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.InfoContext(ctx, "vault entry deleted",
		logger.UserID(user.ID.String()),
		logger.Component("vault"),
	)

	return nil
}

// CheckPasswordAge reports the age of every entry's secret without touching
// ciphertext; no master password is needed for metadata.
func (s *Service) CheckPasswordAge(ctx context.Context, username string) ([]PasswordAge, error) {
	username = sanitizer.NormalizeUsername(username)
	if username == "" {
		return nil, ErrVaultLocked
	}

	user, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrVaultLocked
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	accounts, err := s.storage.AccountsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	now := time.Now()
	out := make([]PasswordAge, 0, len(accounts))
	for _, acc := range accounts {
		age := now.Sub(acc.LastChanged)
		out = append(out, PasswordAge{
			Service:     acc.Service,
			LastChanged: acc.LastChanged,
			Age:         age,
			Stale:       age > s.maxAge,
		})
	}
	return out, nil
}
