package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopops/backend/internal/domain/shared"
)

// releaseScript deletes the key only while it still carries our owner token,
// so an expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockStore implements LockStore with SET NX PX.
// Locks are shared by every instance connected to the same Redis.
type RedisLockStore struct {
	client    *redis.Client
	keyPrefix string
	owner     string
}

// NewRedisLockStore creates a lock store on top of an existing Redis client
func NewRedisLockStore(client *redis.Client, keyPrefix string) *RedisLockStore {
	if keyPrefix == "" {
		keyPrefix = "lock:"
	}
	return &RedisLockStore{
		client:    client,
		keyPrefix: keyPrefix,
		owner:     uuid.New().String(),
	}
}

// Acquire takes the lock for ttl using a single atomic SET NX
func (s *RedisLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, s.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// Release drops the lock if this store still owns it
func (s *RedisLockStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.keyPrefix + key}, s.owner).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by whoever created it
func (s *RedisLockStore) Close() error {
	return nil
}

var _ shared.LockStore = (*RedisLockStore)(nil)
