package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles per-bike rent locks in Redis. The lock guards the rent
// flow against double submission of the same bike; it is not a domain
// invariant (availability is).
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireRentLock attempts to acquire a lock for the given bike.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireRentLock(ctx context.Context, bikeID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:bike:%s", bikeID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseRentLock releases the lock for the given bike.
func (s *LockStore) ReleaseRentLock(ctx context.Context, bikeID string) error {
	key := fmt.Sprintf("lock:bike:%s", bikeID)

	return s.client.Del(ctx, key).Err()
}
