package authgate

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tokenforge/authgate/jwt"
	"github.com/tokenforge/authgate/password"
	"github.com/tokenforge/authgate/revocation"
)

// Builder assembles an [Engine] from explicitly injected dependencies.
// Construction is allocation-only; no I/O happens until Engine methods run.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	userProvider UserProvider
	notifier     Notifier
	auditSink    AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis injects the shared cache client backing the revocation ledger.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserProvider injects the account persistence implementation.
func (b *Builder) WithUserProvider(up UserProvider) *Builder {
	b.userProvider = up
	return b
}

// WithNotifier injects the best-effort login notification backend.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink injects the audit event receiver.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and wires the Engine. A Builder builds
// at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already consumed")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.userProvider == nil {
		return nil, errors.New("user provider is required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	now := b.config.Clock
	if now == nil {
		now = time.Now
	}

	codec, err := jwt.NewCodec(jwt.Config{
		AccessSecret:  b.config.JWT.AccessSecret,
		RefreshSecret: b.config.JWT.RefreshSecret,
		AccessTTL:     b.config.JWT.AccessTTL,
		RefreshTTL:    b.config.JWT.RefreshTTL,
		Issuer:        b.config.JWT.Issuer,
		Clock:         now,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:      b.config,
		now:         now,
		codec:       codec,
		revocations: revocation.NewStore(b.redis, b.config.Revocation.Prefix),
		users:       b.userProvider,
		hasher:      hasher,
		audit:       newAuditDispatcher(b.config.Audit, b.auditSink),
		notify:      newNotifyDispatcher(b.config.Notify, b.notifier),
	}

	b.built = true
	return engine, nil
}
