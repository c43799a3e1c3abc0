// Package auth implements the authentication engine: registration, login
// with optional TOTP second factor, session issuance, the password reset
// token lifecycle, and master password changes.
//
// The engine is stateless between calls. Every operation takes its identity
// (username or token) explicitly, and collaborators are injected:
//
//	svc, err := auth.NewService(store, limiter, sessions,
//	    auth.WithEmailSender(mailer),
//	    auth.WithSecretRewrapper(vaultSvc),
//	    auth.WithLogger(log),
//	)
//
//	result, err := svc.Login(ctx, auth.LoginParams{
//	    Username: "alice",
//	    Password: password,
//	    SourceIP: ip,
//	})
//	switch {
//	case errors.Is(err, auth.ErrRateLimited):
//	    // surface retry-after from *auth.RateLimitError
//	case err != nil:
//	    // generic failure; never reveals which check failed
//	case result.TwoFactorRequired:
//	    // prompt for a TOTP code and call Login again with it
//	default:
//	    // result.Session carries the opaque token
//	}
//
// Credential failures collapse into ErrInvalidCredentials: the caller never
// learns whether the username, password, or code was wrong. Unknown
// usernames absorb a dummy bcrypt comparison so their latency matches.
//
// The storage password hash (bcrypt) and the vault key derivation
// (Argon2id, pkg/keyderive) are deliberately independent schemes with
// independent salts.
package auth
