package jwt

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Domain selects the signing namespace of a credential. Access and refresh
// credentials are signed with distinct secrets so a token issued in one
// domain can never verify in the other.
type Domain string

const (
	// DomainAccess is the signing domain for short-lived access credentials.
	DomainAccess Domain = "access"
	// DomainRefresh is the signing domain for long-lived refresh credentials.
	DomainRefresh Domain = "refresh"
)

var (
	// ErrMalformed is returned when a token cannot be parsed at all.
	ErrMalformed = errors.New("malformed token")
	// ErrSignature is returned when a token's signature does not verify
	// under the domain's secret.
	ErrSignature = errors.New("invalid token signature")
	// ErrExpired is returned when a structurally valid token is past its
	// expiry claim.
	ErrExpired = errors.New("token expired")
)

// Config holds the immutable signing configuration for a Codec.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string

	// Clock overrides the time source for issuance and expiry checks.
	// Nil means time.Now. Only tests should set this.
	Clock func() time.Time
}

// Codec signs and verifies the compact bearer tokens used for both
// credential domains. A Codec performs no I/O; Verify is a pure function of
// the token string and the configured clock.
type Codec struct {
	config Config
}

// NewCodec validates cfg and returns a ready Codec.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("access domain requires a signing secret")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("refresh domain requires a signing secret")
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("access and refresh secrets must be distinct")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Codec{config: cfg}, nil
}

// AccessTTL reports the nominal lifetime of access-domain credentials.
func (c *Codec) AccessTTL() time.Duration { return c.config.AccessTTL }

// RefreshTTL reports the nominal lifetime of refresh-domain credentials.
func (c *Codec) RefreshTTL() time.Duration { return c.config.RefreshTTL }

// Issue signs a new credential for subjectID in the given domain, embedding
// the issue time and the domain's fixed lifetime as registered claims.
func (c *Codec) Issue(subjectID string, domain Domain) (string, error) {
	secret, ttl, err := c.domainParams(domain)
	if err != nil {
		return "", err
	}

	now := c.config.Clock()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if c.config.Issuer != "" {
		claims.Issuer = c.config.Issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks signature integrity and expiry of tokenStr under the given
// domain's secret and returns the embedded subject identifier. Failures are
// classified as ErrMalformed, ErrSignature, or ErrExpired.
func (c *Codec) Verify(tokenStr string, domain Domain) (string, error) {
	secret, _, err := c.domainParams(domain)
	if err != nil {
		return "", err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.config.Clock),
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(options...)
	_, err = parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", classifyParseError(err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject claim", ErrMalformed)
	}

	return claims.Subject, nil
}

// ExpiresAt decodes the expiry claim of tokenStr without verifying its
// signature or expiry. Revocation needs the expiry of tokens that are
// already past it, so no validity check is applied here.
func (c *Codec) ExpiresAt(tokenStr string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry claim", ErrMalformed)
	}
	return claims.ExpiresAt.Time, nil
}

func (c *Codec) domainParams(domain Domain) ([]byte, time.Duration, error) {
	switch domain {
	case DomainAccess:
		return c.config.AccessSecret, c.config.AccessTTL, nil
	case DomainRefresh:
		return c.config.RefreshSecret, c.config.RefreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown signing domain %q", domain)
	}
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignature
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
