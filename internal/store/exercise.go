package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/exercise-tracker/internal/domain"
)

// ExerciseFilter selects exercises for a log query.
// From and To are inclusive calendar-date bounds; nil leaves that side open.
// A Limit of zero or less means no limit.
type ExerciseFilter struct {
	UserID uuid.UUID
	From   *time.Time
	To     *time.Time
	Limit  int
}

// ExerciseStore defines the interface for exercise data persistence.
type ExerciseStore interface {
	// Create saves a new exercise to the store.
	// Returns validation errors from the domain Exercise if data is invalid.
	// Returns ErrInvalidEntity wrapping ErrUserNotFound if the referenced
	// user does not exist.
	Create(ctx context.Context, exercise *domain.Exercise) error

	// Find returns the exercises matching the filter in insertion order,
	// capped at filter.Limit when it is positive.
	Find(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)

	// WithTx returns a new ExerciseStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ExerciseStore
}
