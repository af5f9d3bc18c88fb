// Command purge-sessions removes expired login sessions once and exits.
// It is meant for cron-style scheduling when the server's own cleanup job
// is disabled.
package main

import (
	"context"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"account_backend/internal/app/di"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logger"
	infraredis "account_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gdb, err := db.Open(cfg.DB, di.Models()...)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		zl.Fatal("redis unavailable", zap.Error(err))
	} else if tmp != nil {
		rdb = tmp
		defer func() { _ = rdb.Close() }()
	}

	n, err := di.NewSessionRepository(rdb, gdb).DeleteExpired(ctx)
	if err != nil {
		zl.Fatal("session purge failed", zap.Error(err))
	}
	zl.Info("session purge ok", zap.Int64("removed", n))
}
