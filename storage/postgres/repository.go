package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/vault"
)

// Compile-time contract assertions.
var (
	_ auth.Storage  = (*Repository)(nil)
	_ vault.Storage = (*Repository)(nil)
)

// Repository implements the credential store and the vault store on one
// connection pool. Every method is a single statement; no cross-call
// transactional state is held.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps an established pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
