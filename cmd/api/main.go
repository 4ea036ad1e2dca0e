package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/database"
	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	zlog, err := logger.Init(string(cfg.Environment))
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zlog.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			// generation stays available, just unlimited
			zlog.Warn("rate limiting disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	ctx := context.Background()
	srv, err := server.New(ctx, cfg, db, redisClient, zlog)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
		return errors.New("server stopped unexpectedly")
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zlog.Info("server stopped")
	return nil
}
