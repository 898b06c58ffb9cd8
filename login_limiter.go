package authgate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter is the admission gate in front of the login endpoint: a
// Redis fixed-window counter (INCR + conditional EXPIRE) keyed by request
// origin. The default budget is one attempt per origin per hour.
//
// The limiter is a precondition check, not part of the token lifecycle; it
// fails open when Redis is unreachable so a cache outage cannot lock every
// user out of login entirely.
type LoginLimiter struct {
	redis  redis.UniversalClient
	config RateLimitConfig
}

// NewLoginLimiter returns a limiter enforcing cfg against redisClient.
// Returns nil when limiting is disabled; a nil limiter admits everything.
func NewLoginLimiter(redisClient redis.UniversalClient, cfg RateLimitConfig) *LoginLimiter {
	if !cfg.Enabled {
		return nil
	}
	return &LoginLimiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Allow records one attempt for origin and reports whether it is admitted.
// Returns ErrLoginRateLimited when the window budget is exhausted and a
// wrapped ErrStoreUnavailable when Redis cannot be reached.
func (l *LoginLimiter) Allow(ctx context.Context, origin string) error {
	if l == nil || origin == "" {
		return nil
	}

	key := loginAttemptKey(origin)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.LoginWindow).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if count > int64(l.config.MaxLoginAttempts) {
		return ErrLoginRateLimited
	}

	return nil
}

func loginAttemptKey(origin string) string {
	return "rl:login:" + origin
}
