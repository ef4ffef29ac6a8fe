// internal/domain/checkout/guard.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard makes checkout submission non-reentrant per user: while one attempt
// is outstanding, further submissions are no-ops.
type Guard interface {
	// Acquire claims the user's checkout slot. Returns false when an
	// attempt is already in flight.
	Acquire(ctx context.Context, userID uint, attemptID string) (bool, error)

	// Release frees the slot after the terminal outcome. Only the attempt
	// that acquired the slot may free it.
	Release(ctx context.Context, userID uint, attemptID string)
}

// localGuard blocks reentry within a single process. It backs the
// distributed guard, so a guard-store outage degrades to per-instance
// coverage instead of letting concurrent submissions through.
type localGuard struct {
	mu    sync.Mutex
	slots map[uint]string
}

func newLocalGuard() *localGuard {
	return &localGuard{slots: make(map[uint]string)}
}

func (g *localGuard) acquire(userID uint, attemptID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.slots[userID]; held {
		return false
	}
	g.slots[userID] = attemptID
	return true
}

// release frees the slot only when attemptID still owns it
func (g *localGuard) release(userID uint, attemptID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.slots[userID] == attemptID {
		delete(g.slots, userID)
	}
}

// RedisGuard holds the in-flight flag in Redis so the guard covers every
// gateway replica. The TTL is a backstop against a crashed attempt leaving
// the slot claimed forever.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard with the given lock TTL
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{
		client: client,
		ttl:    ttl,
	}
}

func (g *RedisGuard) key(userID uint) string {
	return fmt.Sprintf("checkout:inflight:%d", userID)
}

// Acquire claims the user's checkout slot with SETNX
func (g *RedisGuard) Acquire(ctx context.Context, userID uint, attemptID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID), attemptID, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	return ok, nil
}

// releaseScript deletes the lock only while this attempt still owns it, so
// an attempt that outlived the TTL cannot free its successor's claim.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Release frees the slot. Errors are ignored, the TTL cleans up after us.
func (g *RedisGuard) Release(ctx context.Context, userID uint, attemptID string) {
	releaseScript.Run(ctx, g.client, []string{g.key(userID)}, attemptID)
}
