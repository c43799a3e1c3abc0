// Package logger builds configured slog.Logger instances and provides typed
// attribute helpers used across the authentication and vault services.
//
// The factory returns standard *slog.Logger values, so packages accept slog
// directly and stay decoupled from this package:
//
//	log := logger.New(logger.WithProduction("vaultkit"))
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "login succeeded",
//	    logger.Username("alice"),
//	    logger.Component("auth"),
//	)
//
// Attribute helpers keep log keys consistent. None of them accept secret
// material; passwords, derived keys, and decrypted secrets are never logged.
package logger
