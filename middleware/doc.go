// Package middleware exposes the HTTP auth gate that fronts protected
// routes.
//
// [Gate] reads the Authorization header, verifies the access credential via
// Engine.Validate, and injects the subject identifier into the request
// context for downstream handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement verification itself, and it never consults the revocation
// ledger: access credentials are not individually revocable.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.Validate.
package middleware
