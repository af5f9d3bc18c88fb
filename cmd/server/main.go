package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"account_backend/internal/app/di"
	"account_backend/internal/app/janitor"
	"account_backend/internal/app/router"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	accountusecase "account_backend/internal/feature/account/usecase"
	audithandler "account_backend/internal/feature/audit/transport/handler"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/http/validation"
	"account_backend/internal/platform/logger"
	infraredis "account_backend/internal/platform/redis"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

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

	if err := validation.Register(); err != nil {
		zl.Fatal("failed to register validators", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB, di.Models()...)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zl.Fatal("failed to access database handle", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			zl.Error("failed to close database", zap.Error(err))
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		zl.Warn("redis unavailable, sessions will be stored in the database", zap.Error(err))
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				zl.Error("failed to close redis client", zap.Error(err))
			}
		}()
	}

	// Mail
	mail, err := di.NewMailer(cfg.SMTP, zl)
	if err != nil {
		zl.Fatal("failed to configure mailer", zap.Error(err))
	}
	defer mail.Wait()

	// Usecase
	accountUC := di.NewAccountUsecase(cfg, gdb, rdb, mail, zl)
	auditUC := di.NewAuditUsecase(gdb, rdb)

	accountUC.SeedAdmin(ctx, accountusecase.AdminSeed{
		Email:    cfg.Admin.Email,
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Phone:    cfg.Admin.Phone,
	})
	go janitor.Run(ctx, accountUC, cfg.Account.SessionCleanupInterval, zl)

	// Handler
	checks := map[string]handler.Check{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	r := router.NewRouter(router.Handlers{
		Auth:   accounthandler.NewAuthHandler(accountUC),
		Users:  accounthandler.NewUserHandler(accountUC),
		Events: audithandler.NewEventHandler(auditUC),
		Health: handler.Health(checks),
	}, cfg.JWT.Secret, accountUC)

	if cfg.JWT.Secret == "" {
		zl.Warn("JWT_SECRET is not set; authenticated routes will fail. Set a strong secret in production.")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
