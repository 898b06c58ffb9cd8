// Package password provides argon2id password hashing with PHC-encoded
// hashes and constant-time verification.
package password
