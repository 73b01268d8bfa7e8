// Package main implements the entry point for the exercise tracker server,
// which records users and their exercise sessions and serves filtered logs.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/phrazzld/exercise-tracker/internal/config"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML configuration file")
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run a database migration command (up, down, reset, status, version) and exit",
	)
	flag.Parse()

	if err := run(context.Background(), *configFile, *migrateCmd); err != nil {
		log.Fatalf("exercise tracker: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, configFile, migrateCmd string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"events_enabled", cfg.Events.Enabled())
	appLogger.Debug("Database configuration", "url", maskDatabaseURL(cfg.Database.URL))

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, appLogger)
		return handleMigrations(ctx, db, migrateCmd, appLogger)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, "up", appLogger); err != nil {
			closeDatabase(db, appLogger)
			return err
		}
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadDotEnv reads environment variables from path. A missing file is not
// an error; variables already set in the environment are kept.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadAppConfig loads configuration from the environment and, when given,
// a YAML file.
func loadAppConfig(configFile string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFrom(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

func closeDatabase(db *sql.DB, appLogger *slog.Logger) {
	if err := db.Close(); err != nil {
		appLogger.Error("Error closing database connection", "error", err)
	}
}

