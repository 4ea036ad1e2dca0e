package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/database"
	"github.com/pageza/budget-chef/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zlog, err := logger.Init(string(cfg.Environment))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DBDriver != "postgres" {
		zlog.Fatal("sql migrations target postgres; other drivers migrate on server start",
			zap.String("driver", cfg.DBDriver))
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = database.PostgresDSN(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if *rollback {
		name, err := database.RollbackLast(ctx, db)
		if errors.Is(err, database.ErrNoMigrations) {
			zlog.Info("no migrations to roll back")
			return
		}
		if err != nil {
			zlog.Fatal("rollback failed", zap.Error(err))
		}
		zlog.Info("rollback complete", zap.String("migration", name))
		return
	}

	if err := database.ApplyMigrations(ctx, db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	zlog.Info("migrations complete")
}
