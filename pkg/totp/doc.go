// Package totp implements time-based one-time passwords (RFC 6238) on top of
// the RFC 4226 HOTP algorithm, for use as a second login factor.
//
// It covers the full enrollment and verification surface the authentication
// engine needs: random Base32 secret generation, otpauth:// provisioning URI
// construction for authenticator apps, and time-step code verification with a
// configurable clock-skew window (default ±1 step of 30 seconds).
//
// The package is stateless; enrollment state transitions (pending → enabled)
// live with the credential records, not here.
//
// # Usage
//
//	secret, _ := totp.GenerateSecretKey()
//	uri, _ := totp.URI(totp.URIParams{
//	    Secret:      secret,
//	    AccountName: "alice",
//	    Issuer:      "Vaultkit",
//	})
//	// render uri as a QR code, then verify the first code:
//	ok, err := totp.Validate(secret, userSuppliedCode)
package totp
