// Package keyderive turns a user's master password and personal salt into the
// symmetric key that protects their vaulted secrets.
//
// Derivation uses Argon2id with a versioned parameter set: the version tag is
// stored next to the salt so work factors can be raised for new users while
// existing records stay decryptable via DeriveWithVersion. The derived key
// length matches the envelope cipher's AES-256 key size.
//
// The derived key exists only for the duration of a single vault operation.
// Callers should zero it with ClearKey when done.
//
// # Usage
//
//	salt, _ := keyderive.NewSalt()
//	key, err := keyderive.Derive("correct horse battery staple", salt)
//	if err != nil {
//	    // malformed salt; never a password problem
//	}
//	defer keyderive.ClearKey(key)
//
// Neither the password nor the derived key is ever logged by this package.
package keyderive
