package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs until their natural expiry. Logout is a
// server-side operation here, not just a client discarding its copy.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

// Tokens is the active denylist. Defaults to the in-process map; main swaps
// in the Redis-backed one when Redis is configured.
var Tokens Denylist = NewMemoryDenylist()

const denyKeyPrefix = "auth:revoked:"

// RedisDenylist keys revoked token IDs in Redis with a TTL matching the
// token's remaining lifetime, so entries clean themselves up.
type RedisDenylist struct {
	Client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{Client: client}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return d.Client.Set(ctx, denyKeyPrefix+tokenID, "1", ttl).Err()
}

func (d *RedisDenylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.Client.Exists(ctx, denyKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryDenylist is the single-process fallback
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token ID -> expiry
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) Revoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.RLock()
	exp, ok := d.entries[tokenID]
	d.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		d.mu.Lock()
		delete(d.entries, tokenID)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
