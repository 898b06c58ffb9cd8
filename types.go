package authgate

import (
	"context"
	"time"
)

// TokenPair carries one freshly issued access/refresh credential pair. The
// refresh token is transported to the client only via the session cookie;
// the access token travels in the response body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is returned by [Engine.Login] and [Engine.Register].
type LoginResult struct {
	UserID string
	Tokens TokenPair
}

// UserRecord is the account record exchanged with a [UserProvider].
// PasswordHash is the PHC-encoded argon2id hash produced by the password
// package; authgate never sees or stores plaintext passwords.
type UserRecord struct {
	UserID       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProvider is the persistence interface callers must implement to bridge
// authgate to their user database.
//
// FindByEmail must return [ErrUserNotFound] when no account matches.
// InsertUser must return [ErrAccountExists] when the email is taken.
// Implementations must be safe for concurrent use.
type UserProvider interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	InsertUser(ctx context.Context, email, passwordHash string) (UserRecord, error)
}

// LoginNotice describes one successful authentication, handed to the
// configured [Notifier] after the login decision is made.
type LoginNotice struct {
	Email string
	At    time.Time
}

// Notifier delivers best-effort login notifications. Delivery runs on a
// background dispatcher; errors never affect the login response.
type Notifier interface {
	NotifyLogin(ctx context.Context, notice LoginNotice) error
}
