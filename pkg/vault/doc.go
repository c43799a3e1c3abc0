// Package vault stores per-service credentials encrypted under a key derived
// from the owner's master password.
//
// The vault key is re-derived on every call from the caller-supplied
// password and the user's stored salt; it is never cached or persisted.
// Read operations tolerate a wrong password by flagging each unopenable
// entry (DecryptFailed) instead of failing; mutating operations verify the
// password first and return ErrVaultLocked on mismatch.
//
//	svc, err := vault.NewService(store, credStore)
//
//	acc, err := svc.AddAccount(ctx, "alice", masterPassword, vault.AddAccountParams{
//	    Service:         "github",
//	    AccountUsername: "alice_gh",
//	    Secret:          "s3cret",
//	})
//
//	entries, err := svc.Accounts(ctx, "alice", masterPassword)
//
// ReencryptAll re-wraps all of a user's entries under a new key and backs
// the authentication engine's master password change.
package vault
