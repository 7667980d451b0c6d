package database

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a client for addr, which may be host:port or a
// redis:// URL, and pings it once.
func ConnectRedis(addr, password string, db int) *redis.Client {
	opts := &redis.Options{Addr: addr, Password: password, DB: db}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Fatalf("failed to parse redis url: %v", err)
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	log.Println("Redis connection successfully opened.")
	return rdb
}
