// Package revocation provides the Redis-backed denylist that records revoked
// refresh credentials until their natural expiry.
//
// # Design
//
// Entries are plain SET-with-TTL markers keyed by the refresh credential; the
// TTL equals the credential's remaining lifetime at revocation time, so an
// entry never outlives the token it revokes and never expires before it.
// Existence checks rely on Redis key expiry, no client-side bookkeeping.
//
// # Architecture boundaries
//
// This package owns the two cache primitives (Put, Contains) and nothing
// else. It does NOT decide when to revoke, parse tokens, or choose
// fail-open/fail-closed policy on outage. Those responsibilities belong to
// the Engine.
//
// # What this package must NOT do
//
//   - Import authgate or jwt (no upward imports).
//   - Expose the underlying Redis client.
//   - Store anything beyond the existence marker.
package revocation
