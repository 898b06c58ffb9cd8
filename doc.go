// Package authgate implements the token lifecycle for an HTTP service:
// paired JWT access/refresh credentials, stateless access verification, and
// Redis-backed refresh revocation with revoke-on-logout semantics.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserProvider] and [Notifier] ports, and the error taxonomy. Signing
// lives in the jwt subpackage, the revocation ledger in revocation, HTTP
// enforcement in middleware.
//
// # What this package must NOT do
//
//   - Expose the Redis client or the denylist encoding in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Rotate refresh credentials: a session uses one refresh token for its
//     whole life, ended only by expiry or logout.
//
// # Failure policy
//
// Access verification is the hot path and never touches Redis. Refresh
// performs exactly one Redis round-trip and fails closed when the ledger is
// unreachable; revocation on logout reports ledger outages to the caller
// while the session cookie is cleared client-side regardless.
package authgate
