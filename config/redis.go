package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is unset; every consumer treats a nil client
// as "feature disabled" and falls back to its local path.
var Redis *redis.Client

func InitRedis() {
	addr := getEnv("REDIS_ADDR", "")
	if addr == "" {
		log.Println("REDIS_ADDR not set — menu cache and token revocation run in-process")
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis at %s unreachable (%v) — continuing without it", addr, err)
		return
	}
	Redis = client
	log.Println("Redis connected:", addr)
}
