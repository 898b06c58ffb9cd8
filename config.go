package authgate

import (
	"errors"
	"time"
)

// Config is the complete engine configuration. Zero values are filled from
// [DefaultConfig]; the two signing secrets have no default and must be set.
type Config struct {
	JWT        JWTConfig
	Revocation RevocationConfig
	RateLimit  RateLimitConfig
	Audit      AuditConfig
	Notify     NotifyConfig

	// Clock overrides the engine time source. Nil means time.Now. Only
	// tests should set this.
	Clock func() time.Time
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the credential codec. AccessSecret and RefreshSecret
// must be distinct so compromising one domain cannot forge the other.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig configures the Redis denylist of revoked refresh tokens.
type RevocationConfig struct {
	// Prefix namespaces denylist keys in the shared cache.
	Prefix string
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig tunes the fixed-window admission gate in front of login.
type RateLimitConfig struct {
	Enabled          bool
	MaxLoginAttempts int
	LoginWindow      time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
NOTIFY CONFIG
====================================
*/

// NotifyConfig controls the asynchronous login notification dispatcher.
type NotifyConfig struct {
	BufferSize int
}

// DefaultConfig returns the baseline configuration: 15 minute access
// credentials, 24 hour refresh credentials, one login attempt per origin per
// hour, audit enabled with a drop-if-full buffer.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Revocation: RevocationConfig{
			Prefix: "bl",
		},
		RateLimit: RateLimitConfig{
			Enabled:          true,
			MaxLoginAttempts: 1,
			LoginWindow:      time.Hour,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Notify: NotifyConfig{
			BufferSize: 16,
		},
	}
}

func validateConfig(cfg Config) error {
	if len(cfg.JWT.AccessSecret) == 0 || len(cfg.JWT.RefreshSecret) == 0 {
		return errors.New("both signing secrets must be configured")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("credential lifetimes must be positive")
	}
	if cfg.JWT.RefreshTTL < cfg.JWT.AccessTTL {
		return errors.New("refresh lifetime must not be shorter than access lifetime")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.MaxLoginAttempts <= 0 {
			return errors.New("rate limit requires a positive attempt budget")
		}
		if cfg.RateLimit.LoginWindow <= 0 {
			return errors.New("rate limit requires a positive window")
		}
	}
	return nil
}
