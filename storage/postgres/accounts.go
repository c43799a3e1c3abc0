package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/vaultkit/pkg/pg"
	"github.com/dmitrymomot/vaultkit/pkg/vault"
)

const accountColumns = `id, user_id, service, account_username, encrypted_secret,
	has_2fa, last_changed, strength_score, breach_flag, created_at`

func scanAccount(row pgx.Row) (*vault.Account, error) {
	var (
		a     vault.Account
		score int16
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.Service, &a.AccountUsername, &a.EncryptedSecret,
		&a.Has2FA, &a.LastChanged, &score, &a.BreachFlag, &a.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, vault.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	a.StrengthScore = int(score)
	return &a, nil
}

// CreateAccount inserts a new vault entry. A per-user service conflict maps
// to ErrServiceExists.
func (r *Repository) CreateAccount(ctx context.Context, account *vault.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, user_id, service, account_username, encrypted_secret,
			has_2fa, last_changed, strength_score, breach_flag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.UserID, account.Service, account.AccountUsername,
		account.EncryptedSecret, account.Has2FA, account.LastChanged,
		int16(account.StrengthScore), account.BreachFlag, account.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return vault.ErrServiceExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *Repository) AccountsByUser(ctx context.Context, userID uuid.UUID) ([]*vault.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY service`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var out []*vault.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return out, nil
}

func (r *Repository) AccountByService(ctx context.Context, userID uuid.UUID, service string) (*vault.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND service = $2`,
		userID, service)
	return scanAccount(row)
}

func (r *Repository) UpdateAccount(ctx context.Context, account *vault.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET account_username = $2, encrypted_secret = $3, has_2fa = $4,
			last_changed = $5, strength_score = $6, breach_flag = $7
		WHERE id = $1`,
		account.ID, account.AccountUsername, account.EncryptedSecret,
		account.Has2FA, account.LastChanged, int16(account.StrengthScore),
		account.BreachFlag,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vault.ErrAccountNotFound
	}
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, userID uuid.UUID, service string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM accounts WHERE user_id = $1 AND service = $2`, userID, service)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vault.ErrAccountNotFound
	}
	return nil
}
