// Package cache holds the Redis-backed read cache for hot menu lookups.
// Everything is nil-safe: with no Redis client configured the cache reports
// misses and swallows writes, so handlers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/redis/go-redis/v9"
)

// Menu is the process-wide menu cache, wired up in main when Redis is available
var Menu = &MenuCache{TTL: 5 * time.Minute}

type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func menuKey(restaurantID uint) string {
	return "menu:restaurant:" + strconv.FormatUint(uint64(restaurantID), 10)
}

// Get returns the cached menu for a restaurant, if present
func (c *MenuCache) Get(ctx context.Context, restaurantID uint) ([]models.MenuItem, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, menuKey(restaurantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Set stores a restaurant's menu with the configured TTL
func (c *MenuCache) Set(ctx context.Context, restaurantID uint, items []models.MenuItem) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.Client.Set(ctx, menuKey(restaurantID), raw, c.TTL)
}

// Invalidate drops a restaurant's cached menu after any menu write
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID uint) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Del(ctx, menuKey(restaurantID))
}
