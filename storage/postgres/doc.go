// Package postgres persists credential records and encrypted vault entries
// in PostgreSQL via pgx.
//
// A single Repository backs both the authentication engine and the vault:
// the two storage contracts share the users table, and vault entries cascade
// on user deletion. Schema changes live in migrations/ and are applied with
// pg.Migrate on startup.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	repo := postgres.NewRepository(pool)
//
//	authSvc, err := auth.NewService(repo, limiter, sessions)
//	vaultSvc, err := vault.NewService(repo, repo)
package postgres
