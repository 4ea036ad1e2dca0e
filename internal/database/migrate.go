package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/budget-chef/backend/internal/logger"
	"github.com/pageza/budget-chef/backend/internal/models"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// ErrNoMigrations is returned by RollbackLast when nothing has been applied
var ErrNoMigrations = errors.New("no migrations have been applied")

// RunMigrations brings the schema up to date. Postgres uses the embedded SQL files,
// other dialects use gorm's AutoMigrate.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		logger.Named("migrate").Info("using gorm auto-migration", zap.String("dialect", db.Dialector.Name()))
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return ApplyMigrations(context.Background(), sqlDB)
}

// AutoMigrate creates or updates every table from the gorm models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.SavedRecipe{},
	)
}

func migrationNames(suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// ApplyMigrations runs every embedded *.up.sql file not yet recorded, in name order
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	log := logger.Named("migrate")

	if err := ensureMigrationsTable(ctx, db); err != nil {
		return err
	}

	names, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}

	for _, name := range names {
		var applied bool
		if err := db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			log.Debug("skipping migration", zap.String("name", name))
			continue
		}

		content, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", name, err)
		}

		log.Info("applied migration", zap.String("name", name))
	}

	return nil
}

// RollbackLast reverts the most recently applied migration and returns its name
func RollbackLast(ctx context.Context, db *sql.DB) (string, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return "", err
	}

	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoMigrations
	}
	if err != nil {
		return "", fmt.Errorf("failed to find last migration: %w", err)
	}

	down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
	content, err := migrationFS.ReadFile("migrations/" + down)
	if err != nil {
		return "", fmt.Errorf("no down migration for %s: %w", name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("failed to execute %s: %w", down, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE name = $1", name); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("failed to unrecord migration %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	logger.Named("migrate").Info("rolled back migration", zap.String("name", name))
	return name, nil
}
