// Package session manages authenticated sessions with opaque random tokens
// and server-side state.
//
// Tokens carry no claims; every validation resolves the token against the
// Store and checks expiry at read time. Because state is server-side, a
// password reset can revoke every outstanding session for a user via
// RevokeUser — a hard requirement that rules out stateless token formats.
//
// Two stores are provided: MemoryStore for tests and single-instance use,
// and RedisStore with TTL-based expiry plus a per-user token index for
// revocation.
package session
