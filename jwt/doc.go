// Package jwt signs and verifies the compact bearer credentials used by
// authgate, with separate signing domains for access and refresh tokens.
package jwt
