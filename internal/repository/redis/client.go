package redis

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis. A failed ping is not fatal: it returns nil
// and the caller runs without a cache.
func InitRedis(ctx context.Context, addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Running without live cache and stats.", err)
		client.Close()
		return nil
	}

	log.Println("[REDIS] Connected successfully")
	return client
}
