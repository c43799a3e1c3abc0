// Package breach checks passwords against the Pwned Passwords corpus using
// the k-anonymity range API: only a five-character SHA-1 prefix is sent over
// the network, so neither the password nor its full hash ever leaves the
// process.
//
// Lookups are advisory. Callers flag compromised passwords but never fail an
// account operation because the breach service was unreachable.
package breach
