package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the backing cache cannot be reached.
// Callers decide fail-open vs fail-closed; the store only reports the fact.
var ErrUnavailable = errors.New("revocation store unavailable")

const defaultPrefix = "bl"

// sentinel value stored under each revoked key; only key existence matters.
const marker = "1"

// Store is a capability-restricted denylist over a shared Redis cache. It
// records revoked refresh credentials until their natural expiry and answers
// existence checks. Entry lifetime is owned entirely by Redis key expiry.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore returns a Store writing keys under prefix. An empty prefix
// selects the default "bl" namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

// Put records key as revoked for ttl. A non-positive ttl is a no-op: the
// credential is already expired and needs no ledger entry.
func (s *Store) Put(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, s.key(key), marker, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Contains reports whether key is currently revoked. Entries past their TTL
// report false through Redis's own expiry.
func (s *Store) Contains(ctx context.Context, key string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

func (s *Store) key(raw string) string {
	return s.prefix + ":" + raw
}
