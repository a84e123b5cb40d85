package locking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "bookd:lock:owner:"

	// DefaultLockTTL bounds how long a crashed holder can block an owner's
	// commits. It comfortably exceeds one busy-read plus one insert.
	DefaultLockTTL = 10 * time.Second

	defaultRetryInterval = 25 * time.Millisecond
)

// releaseScript deletes the lock only if the caller still holds it, so a
// lease that expired and was re-acquired by someone else is never released
// out from under them.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes commits per owner across processes using a Redis
// lease (SET NX PX with a holder token).
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLocker creates a RedisLocker with the default lease TTL.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           DefaultLockTTL,
		retryInterval: defaultRetryInterval,
	}
}

// Acquire polls SET NX until the owner's lease is obtained or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, ownerID uuid.UUID) (func(), error) {
	key := lockKeyPrefix + ownerID.String()
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire redis lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = releaseScript.Run(ctx, l.client, []string{key}, token).Result()
	}
	return release, nil
}
