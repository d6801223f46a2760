// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"warbler/internal/observability"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis initializes the Redis client with the given address. The cache
// is best-effort: on a bad address or unreachable server the application
// continues without caching.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			observability.Logger.Warn("invalid REDIS_URL, continuing without cache",
				slog.String("addr", addr),
				slog.String("error", err.Error()))
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		observability.Logger.Warn("redis unavailable, continuing without cache",
			slog.String("error", err.Error()))
		client = nil
	} else {
		observability.Logger.Info("Redis connected")
	}
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Disable drops the client, turning every cache operation into a no-op.
// Used by tests and by deployments that run without Redis.
func Disable() {
	client = nil
}
