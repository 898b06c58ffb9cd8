package authgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tokenforge/authgate/jwt"
	"github.com/tokenforge/authgate/password"
	"github.com/tokenforge/authgate/revocation"
)

// Engine orchestrates the token lifecycle: issuance of access/refresh pairs,
// stateless access verification, stateful refresh verification against the
// revocation ledger, and revocation on logout. Engine holds no per-request
// state and is safe for arbitrary concurrency after [Builder.Build].
type Engine struct {
	config Config
	now    func() time.Time

	codec       *jwt.Codec
	revocations *revocation.Store
	users       UserProvider
	hasher      *password.Argon2

	audit  *auditDispatcher
	notify *notifyDispatcher
}

// AccessTTL reports the nominal access credential lifetime.
func (e *Engine) AccessTTL() time.Duration { return e.config.JWT.AccessTTL }

// RefreshTTL reports the nominal refresh credential lifetime, which is also
// the session cookie max-age.
func (e *Engine) RefreshTTL() time.Duration { return e.config.JWT.RefreshTTL }

// IssuePair mints one access and one refresh credential for subjectID. No
// I/O beyond signing; a session exists from this point until the refresh
// credential expires or is revoked.
func (e *Engine) IssuePair(subjectID string) (TokenPair, error) {
	if e == nil || e.codec == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	access, err := e.codec.Issue(subjectID, jwt.DomainAccess)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access credential: %w", err)
	}
	refresh, err := e.codec.Issue(subjectID, jwt.DomainRefresh)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh credential: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Validate verifies an access credential and returns its subject identifier.
// Purely stateless: signature and expiry only, never the revocation ledger.
// Access credentials are not individually revocable; their short lifetime
// bounds the window after a refresh credential is revoked.
func (e *Engine) Validate(token string) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}

	subject, err := e.codec.Verify(token, jwt.DomainAccess)
	if err != nil {
		return "", mapCodecError(err)
	}
	return subject, nil
}

// Refresh exchanges a still-valid, unrevoked refresh credential for a new
// access credential. The refresh credential is not rotated: it stays valid
// until natural expiry or logout, so concurrent refreshes with the same
// cookie all succeed.
//
// When the revocation ledger is unreachable the exchange fails closed with
// ErrStoreUnavailable: an unreachable ledger never silently grants access.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}

	subject, err := e.codec.Verify(refreshToken, jwt.DomainRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			e.emitAudit(ctx, EventRefresh, subject, "", false, ErrTokenExpired)
			return "", ErrTokenExpired
		}
		e.emitAudit(ctx, EventRefresh, "", "", false, ErrRefreshInvalid)
		return "", fmt.Errorf("%w: %v", ErrRefreshInvalid, err)
	}

	revoked, err := e.revocations.Contains(ctx, refreshToken)
	if err != nil {
		e.emitAudit(ctx, EventRefresh, subject, "", false, ErrStoreUnavailable)
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if revoked {
		e.emitAudit(ctx, EventRefresh, subject, "", false, ErrTokenRevoked)
		return "", ErrTokenRevoked
	}

	access, err := e.codec.Issue(subject, jwt.DomainAccess)
	if err != nil {
		return "", fmt.Errorf("issue access credential: %w", err)
	}

	e.emitAudit(ctx, EventRefresh, subject, "", true, nil)
	return access, nil
}

// Revoke records refreshToken in the revocation ledger with TTL equal to its
// remaining lifetime. The expiry is read without signature validation so a
// technically-expired or foreign-signed token still revokes cleanly.
// Idempotent: revoking an absent, already-revoked, or already-expired
// credential is a successful no-op.
func (e *Engine) Revoke(ctx context.Context, refreshToken string) error {
	if e == nil || e.codec == nil {
		return ErrEngineNotReady
	}
	if refreshToken == "" {
		// Logging out with no active session is not an error.
		return nil
	}

	expiresAt, err := e.codec.ExpiresAt(refreshToken)
	if err != nil {
		// Unparsable tokens carry no session worth recording.
		return nil
	}

	ttl := expiresAt.Sub(e.now())
	if ttl <= 0 {
		return nil
	}

	if err := e.revocations.Put(ctx, refreshToken, ttl); err != nil {
		e.emitAudit(ctx, EventRevoke, "", "", false, ErrStoreUnavailable)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.emitAudit(ctx, EventRevoke, "", "", true, nil)
	return nil
}

// Login authenticates email/password against the user provider and issues a
// credential pair. A login notification is dispatched fire-and-forget after
// the decision; its outcome never affects the returned result.
func (e *Engine) Login(ctx context.Context, email, pass string) (LoginResult, error) {
	if e == nil || e.users == nil {
		return LoginResult{}, ErrEngineNotReady
	}
	if email == "" || pass == "" {
		return LoginResult{}, ErrMissingFields
	}

	record, err := e.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.emitAudit(ctx, EventLogin, "", email, false, ErrUserNotFound)
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, fmt.Errorf("user lookup: %w", err)
	}

	ok, err := e.hasher.Verify(pass, record.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("password verify: %w", err)
	}
	if !ok {
		e.emitAudit(ctx, EventLogin, record.UserID, email, false, ErrInvalidCredentials)
		return LoginResult{}, ErrInvalidCredentials
	}

	pair, err := e.IssuePair(record.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	e.notify.Dispatch(LoginNotice{Email: email, At: e.now()})
	e.emitAudit(ctx, EventLogin, record.UserID, email, true, nil)

	return LoginResult{UserID: record.UserID, Tokens: pair}, nil
}

// Register creates an account for email and issues its first credential
// pair. The user ID is minted here; the provider persists it as given.
func (e *Engine) Register(ctx context.Context, email, pass string) (LoginResult, error) {
	if e == nil || e.users == nil {
		return LoginResult{}, ErrEngineNotReady
	}
	if email == "" || pass == "" {
		return LoginResult{}, ErrMissingFields
	}

	hash, err := e.hasher.Hash(pass)
	if err != nil {
		return LoginResult{}, fmt.Errorf("password hash: %w", err)
	}

	record, err := e.users.InsertUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.emitAudit(ctx, EventRegister, "", email, false, ErrAccountExists)
			return LoginResult{}, ErrAccountExists
		}
		return LoginResult{}, fmt.Errorf("user insert: %w", err)
	}

	pair, err := e.IssuePair(record.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	e.emitAudit(ctx, EventRegister, record.UserID, email, true, nil)
	return LoginResult{UserID: record.UserID, Tokens: pair}, nil
}

// NewUserID mints a fresh user identifier for provider implementations that
// delegate ID generation.
func NewUserID() string {
	return uuid.NewString()
}

// Close stops the audit and notification dispatchers, draining queued
// events. Safe to call more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
	e.notify.Close()
}

// AuditDropped reports how many audit events were dropped on a full buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) emitAudit(ctx context.Context, eventType, userID, email string, success bool, failure error) {
	if e.audit == nil {
		return
	}
	event := AuditEvent{
		Timestamp: e.now(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	e.audit.Emit(ctx, event)
}

func mapCodecError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrSignature):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrMalformed):
		return ErrMalformedToken
	default:
		return err
	}
}
