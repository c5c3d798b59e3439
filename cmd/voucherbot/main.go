// cmd/voucherbot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voucherbot/internal/bootstrap"
	"voucherbot/internal/common/config"
	"voucherbot/internal/common/database"
	"voucherbot/internal/common/logger"
	"voucherbot/internal/common/observability"
	"voucherbot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting voucherbot...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("driver", cfg.Database.Driver),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init SQL pool with retry ---
	var db *database.SQLClient
	err = database.RetryWithBackoff(func() error {
		var err error
		db, err = database.NewSQL(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Ping(ctx); err != nil {
			_ = db.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, log, "Database connection")

	if err != nil {
		zapLog.Fatal("database failed after retries", zap.Error(err))
	}
	defer db.Close()
	zapLog.Info("Database connected successfully", zap.String("driver", db.Driver))

	// --- Init Redis result cache with retry ---
	storage := bootstrap.Storage{DB: db.DB}
	if cfg.Chatbot.CacheEnabled {
		var redis *database.RedisClient
		err = database.RetryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, log, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		storage.Cache = redis
		zapLog.Info("Redis connected successfully")
	}

	router, err := bootstrap.NewRouter(cfg, storage, log)
	if err != nil {
		zapLog.Fatal("pipeline setup failed", zap.Error(err))
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(server.Options{
		ServiceName:   cfg.App.Name,
		Chat:          router,
		Database:      db,
		Observability: obs,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	zapLog.Info("voucherbot stopped gracefully")
}
