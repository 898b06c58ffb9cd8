package authgate

import "errors"

var (
	// ErrMalformedToken is returned when a presented credential cannot be parsed.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidSignature is returned when a credential's signature does not
	// verify under the expected domain key.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned when a credential is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is returned when a refresh credential carries a valid
	// signature but has been recorded in the revocation ledger.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRefreshInvalid is returned when a refresh credential fails
	// verification for any non-expiry reason.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrStoreUnavailable is returned when the revocation ledger cannot be
	// reached. Refresh fails closed on this error; logout reports it to the
	// caller while the cookie is still cleared client-side.
	ErrStoreUnavailable = errors.New("revocation store unavailable")
	// ErrMissingFields is returned when a login or register request omits
	// the email or password.
	ErrMissingFields = errors.New("email and password are required")
	// ErrInvalidCredentials is returned when the password does not match the
	// stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by UserProvider implementations when no
	// account matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is returned by UserProvider implementations when the
	// email is already registered.
	ErrAccountExists = errors.New("account already exists")
	// ErrLoginRateLimited is returned by the login admission gate when an
	// origin has exhausted its attempt window.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrEngineNotReady is returned when an Engine method is called before
	// Builder.Build completed.
	ErrEngineNotReady = errors.New("engine not initialized")
)
