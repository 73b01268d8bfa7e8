package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/exercise-tracker/internal/platform/postgres"
)

// handleMigrations runs a goose migration command against db.
// It is used both by the -migrate flag and by auto-migration at startup.
func handleMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations", "command", command)

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}

	logger.Info("Migrations completed", "command", command)
	return nil
}
