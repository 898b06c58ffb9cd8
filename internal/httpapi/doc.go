// Package httpapi exposes the token lifecycle over HTTP.
//
// The route table mirrors the engine's operations: POST /register and
// /login issue a credential pair (access token in the body, refresh token in
// a strict http-only cookie), POST /refresh exchanges the cookie for a new
// access token, POST /logout revokes the cookie's credential and clears it,
// and GET /me demonstrates the gate-protected contract.
//
// # Architecture boundaries
//
// Handlers translate HTTP to Engine calls and map the error taxonomy to
// status codes. They hold no authentication logic and no state beyond the
// cookie policy.
package httpapi
