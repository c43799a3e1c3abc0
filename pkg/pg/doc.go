// Package pg provides PostgreSQL connection and migration helpers for the
// persistent stores: user accounts and encrypted vault entries.
//
// Connect builds a pgxpool with retry, Migrate applies goose migrations over
// a database/sql bridge, and Healthcheck plugs the pool into readiness
// probes. Error-classification helpers (IsNotFoundError, IsDuplicateKeyError)
// let repositories map driver errors to domain errors without importing pgx
// directly.
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
package pg
