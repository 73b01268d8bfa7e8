package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// PostgresExerciseStore implements the store.ExerciseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExerciseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseStore creates a new PostgreSQL implementation of the ExerciseStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresExerciseStore(db store.DBTX, logger *slog.Logger) *PostgresExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExerciseStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_store")),
	}
}

// Ensure PostgresExerciseStore implements store.ExerciseStore interface
var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return &PostgresExerciseStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ExerciseStore.Create
// Returns store.ErrInvalidEntity wrapping store.ErrUserNotFound if the user ID
// doesn't exist (foreign key violation).
func (s *PostgresExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during create",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return err
	}

	query := `
		INSERT INTO exercises (id, user_id, description, duration, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during exercise creation",
				slog.String("exercise_id", exercise.ID.String()),
				slog.String("user_id", exercise.UserID.String()))
			return fmt.Errorf("%w: %w: %s", store.ErrInvalidEntity, store.ErrUserNotFound, exercise.UserID)
		}

		log.Error("failed to create exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()),
			slog.String("user_id", exercise.UserID.String()))
		return MapError(err)
	}

	log.Info("exercise created successfully",
		slog.String("exercise_id", exercise.ID.String()),
		slog.String("user_id", exercise.UserID.String()))
	return nil
}

// Find implements store.ExerciseStore.Find
func (s *PostgresExerciseStore) Find(ctx context.Context, filter store.ExerciseFilter) ([]domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildFindQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query exercises",
			slog.String("error", err.Error()),
			slog.String("user_id", filter.UserID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Description,
			&e.Duration,
			&e.Date,
			&e.CreatedAt,
		); err != nil {
			return nil, store.NewStoreError("exercise", "find", "failed to scan row", err)
		}
		e.Date = domain.CalendarDate(e.Date)
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("exercise", "find", "row iteration failed", err)
	}

	log.Debug("found exercises",
		slog.String("user_id", filter.UserID.String()),
		slog.Int("count", len(exercises)))
	return exercises, nil
}

// buildFindQuery assembles the log query. Date bounds are inclusive and
// each is added only when present; rows come back in insertion order.
func buildFindQuery(filter store.ExerciseFilter) (string, []any) {
	var b strings.Builder
	args := []any{filter.UserID}

	b.WriteString(`SELECT id, user_id, description, duration, date, created_at FROM exercises WHERE user_id = $1`)

	if filter.From != nil {
		args = append(args, domain.CalendarDate(*filter.From))
		fmt.Fprintf(&b, " AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, domain.CalendarDate(*filter.To))
		fmt.Fprintf(&b, " AND date <= $%d", len(args))
	}

	b.WriteString(" ORDER BY seq")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	return b.String(), args
}
