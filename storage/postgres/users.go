package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/pg"
)

const userColumns = `id, username, email, password_hash, salt, kdf_version,
	totp_secret, totp_enabled, reset_token, reset_token_expires_at, created_at`

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		u          auth.User
		kdfVersion int16
		resetToken *string
		resetExp   *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt, &kdfVersion,
		&u.TOTPSecret, &u.TOTPEnabled, &resetToken, &resetExp, &u.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.KDFVersion = keyderive.Version(kdfVersion)
	if resetToken != nil {
		u.ResetToken = *resetToken
	}
	if resetExp != nil {
		u.ResetTokenExpiresAt = *resetExp
	}
	return &u, nil
}

// CreateUser inserts a new credential record. A username conflict maps to
// ErrUsernameTaken.
func (r *Repository) CreateUser(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, salt, kdf_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Salt,
		int16(user.KDFVersion), user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *Repository) FindByResetToken(ctx context.Context, token string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
	return scanUser(row)
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.updateUser(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, hash)
}

func (r *Repository) UpdatePasswordAndSalt(ctx context.Context, userID uuid.UUID, hash string, salt []byte, kdfVersion uint8) error {
	return r.updateUser(ctx,
		`UPDATE users SET password_hash = $2, salt = $3, kdf_version = $4 WHERE id = $1`,
		userID, hash, salt, int16(kdfVersion))
}

func (r *Repository) UpdateTOTP(ctx context.Context, userID uuid.UUID, secret string, enabled bool) error {
	return r.updateUser(ctx,
		`UPDATE users SET totp_secret = $2, totp_enabled = $3 WHERE id = $1`,
		userID, secret, enabled)
}

func (r *Repository) UpdateResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	return r.updateUser(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`,
		userID, token, expiresAt)
}

func (r *Repository) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	return r.updateUser(ctx,
		`UPDATE users SET reset_token = NULL, reset_token_expires_at = NULL WHERE id = $1`,
		userID)
}

// DeleteUser removes the credential record; vault entries cascade.
func (r *Repository) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return r.updateUser(ctx, `DELETE FROM users WHERE id = $1`, userID)
}

func (r *Repository) updateUser(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
