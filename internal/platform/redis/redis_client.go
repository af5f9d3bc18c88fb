// Package redis opens the Redis connection used by the session store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"account_backend/internal/platform/config"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection with PING.
// It returns (nil, nil) when no host is configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		zap.L().Info("redis not configured, sessions will be stored in the database")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		zap.L().Error("redis connection failed", zap.String("address", cfg.Addr()), zap.Error(err))
		return nil, err
	}

	zap.L().Info("redis connection successful", zap.String("address", cfg.Addr()))
	return rdb, nil
}
