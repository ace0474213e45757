package cache

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a pinged client, or nil when addr is empty or unreachable.
func NewRedisClient(ctx context.Context, addr, password string) *redis.Client {
	if strings.TrimSpace(addr) == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis not available, session cache disabled", "addr", addr, "error", err.Error())
		_ = client.Close()
		return nil
	}
	return client
}
