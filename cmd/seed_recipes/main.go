package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/config"
	"github.com/pageza/budget-chef/backend/internal/database"
	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/repository"
	"github.com/pageza/budget-chef/backend/internal/seed"
)

func main() {
	replace := flag.Bool("replace", false, "Delete and recreate seeded recipes instead of upserting them")
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

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	n, err := seed.Apply(context.Background(), repository.NewRecipeRepository(db), *replace)
	if err != nil {
		zlog.Fatal("failed to seed recipes", zap.Error(err))
	}
	zlog.Info("seeded recipes", zap.Int("count", n), zap.Bool("replace", *replace))
}
