package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aina-app/aina-api/pkg/config"
)

// NewRedis returns a configured Redis client. A disabled configuration
// yields a nil client, which the cache repository treats as "always miss".
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Key builds a cache key scoped to a user and resource type.
func Key(userID, resource string, parts ...string) string {
	key := fmt.Sprintf("aina:%s:%s", userID, resource)
	for _, part := range parts {
		key += ":" + part
	}
	return key
}
