// Package synclock provides the distributed per-store lock that keeps
// catalog sync runs single-flight across instances.
package synclock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
)

const defaultKeyPrefix = "catalog:sync:lock:"

// RedisStoreLock implements StoreLock using Redis SETNX. Suitable for
// distributed deployments where multiple instances may serve sync requests
// for the same store.
type RedisStoreLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStoreLock creates a lock backed by an existing Redis client. The
// TTL bounds how long a crashed run can hold a store hostage.
func NewRedisStoreLock(client *redis.Client, ttl time.Duration) *RedisStoreLock {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStoreLock{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
	}
}

// Acquire takes the store's lock with SETNX. The returned release func
// deletes the key only if this caller still owns it.
func (l *RedisStoreLock) Acquire(ctx context.Context, storeID uuid.UUID) (func(), error) {
	key := l.keyPrefix + storeID.String()
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return nil, integration.ErrSyncAlreadyRunning
	}

	release := func() {
		// Compare-and-delete so a run that outlived its TTL cannot release
		// a lock that has since been acquired by another run.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		script := redis.NewScript(`
			if redis.call("GET", KEYS[1]) == ARGV[1] then
				return redis.call("DEL", KEYS[1])
			end
			return 0
		`)
		_ = script.Run(releaseCtx, l.client, []string{key}, token).Err()
	}

	return release, nil
}

// Ensure RedisStoreLock implements StoreLock
var _ integration.StoreLock = (*RedisStoreLock)(nil)

// InMemoryStoreLock implements StoreLock with a process-local mutex map.
// Suitable for single-instance deployments and tests.
type InMemoryStoreLock struct {
	mu     sync.Mutex
	locked map[uuid.UUID]struct{}
}

// NewInMemoryStoreLock creates a process-local store lock
func NewInMemoryStoreLock() *InMemoryStoreLock {
	return &InMemoryStoreLock{
		locked: make(map[uuid.UUID]struct{}),
	}
}

// Acquire takes the store's lock, failing fast when it is already held
func (l *InMemoryStoreLock) Acquire(_ context.Context, storeID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.locked[storeID]; held {
		return nil, integration.ErrSyncAlreadyRunning
	}
	l.locked[storeID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.locked, storeID)
		})
	}

	return release, nil
}

// Ensure InMemoryStoreLock implements StoreLock
var _ integration.StoreLock = (*InMemoryStoreLock)(nil)
