package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/events"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// AddExerciseInput carries the raw fields of an add-exercise request.
// Duration and Date are coerced by the service.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// ExerciseEntry is a logged exercise together with its owner.
type ExerciseEntry struct {
	User     domain.User
	Exercise domain.Exercise
}

// LogQuery selects a user's exercise log. From and To are optional
// inclusive date bounds; Limit is applied only when it is a positive integer.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// ExerciseLog is the answer to a log query. Count is the number of
// exercises returned, after the limit.
type ExerciseLog struct {
	User      domain.User
	Count     int
	Exercises []domain.Exercise
}

// ExerciseService provides the exercise log operations.
type ExerciseService interface {
	// AddExercise records an exercise for an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseEntry, error)

	// GetLog returns the filtered, limited exercise log of a user.
	// Returns ErrUserNotFound if the user does not exist.
	GetLog(ctx context.Context, query LogQuery) (*ExerciseLog, error)
}

// ExerciseServiceImpl implements the ExerciseService interface
type ExerciseServiceImpl struct {
	db            *sql.DB
	userStore     store.UserStore
	exerciseStore store.ExerciseStore
	emitter       events.EventEmitter
	metrics       MetricsRecorder
	logger        *slog.Logger
	now           func() time.Time
}

// NewExerciseService creates a new ExerciseService.
// db is used to run the user lookup and the insert in one transaction.
// emitter and metrics may be nil.
func NewExerciseService(
	db *sql.DB,
	userStore store.UserStore,
	exerciseStore store.ExerciseStore,
	emitter events.EventEmitter,
	metrics MetricsRecorder,
	logger *slog.Logger,
) *ExerciseServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &ExerciseServiceImpl{
		db:            db,
		userStore:     userStore,
		exerciseStore: exerciseStore,
		emitter:       emitter,
		metrics:       metrics,
		logger:        logger.With("component", "exercise_service"),
		now:           time.Now,
	}
}

var _ ExerciseService = (*ExerciseServiceImpl)(nil)

// AddExercise looks up the user, coerces duration and date and stores the
// exercise. A missing or unparsable date falls back to today.
func (s *ExerciseServiceImpl) AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := parseUserID(input.UserID)
	if err != nil {
		log.Debug("malformed user id", "user_id", input.UserID)
		return nil, err
	}

	var entry *ExerciseEntry
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		user, err := s.userStore.WithTx(tx).GetByID(ctx, userID)
		if err != nil {
			return NewServiceError("exercise", "add_exercise", "failed to look up user", err)
		}

		duration, err := domain.ParseDuration(input.Duration)
		if err != nil {
			return err
		}

		exercise, err := domain.NewExercise(userID, input.Description, duration, s.resolveDate(log, input.Date))
		if err != nil {
			return err
		}

		if err := s.exerciseStore.WithTx(tx).Create(ctx, exercise); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// the user vanished between lookup and insert
				return ErrUserNotFound
			}
			return NewServiceError("exercise", "add_exercise", "failed to save exercise", err)
		}

		entry = &ExerciseEntry{User: *user, Exercise: *exercise}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, domain.ErrValidation) {
			log.Debug("exercise rejected", "error", err, "user_id", userID)
		} else {
			log.Error("failed to add exercise", "error", err, "user_id", userID)
		}
		return nil, err
	}

	s.metrics.ExerciseLogged(entry.Exercise.Duration)
	log.Info("exercise logged",
		"exercise_id", entry.Exercise.ID,
		"user_id", userID)

	publish(ctx, log, s.emitter, events.TypeExerciseLogged, userID.String(), events.ExerciseLoggedPayload{
		ExerciseID:  entry.Exercise.ID,
		UserID:      userID,
		Description: entry.Exercise.Description,
		Duration:    entry.Exercise.Duration,
		Date:        entry.Exercise.FormattedDate(),
	})

	return entry, nil
}

// resolveDate parses the requested date, defaulting to today.
func (s *ExerciseServiceImpl) resolveDate(log *slog.Logger, value string) time.Time {
	if value == "" {
		return s.now()
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		log.Debug("unparsable exercise date, using today", "date", value)
		return s.now()
	}
	return date
}

// GetLog returns a user's exercises matching the query.
func (s *ExerciseServiceImpl) GetLog(ctx context.Context, query LogQuery) (*ExerciseLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := parseUserID(query.UserID)
	if err != nil {
		log.Debug("malformed user id", "user_id", query.UserID)
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user", "error", err, "user_id", userID)
		}
		return nil, NewServiceError("exercise", "get_log", "failed to look up user", err)
	}

	filter := store.ExerciseFilter{
		UserID: userID,
		Limit:  domain.ParseLimit(query.Limit),
	}
	if filter.From, err = parseBound("from", query.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseBound("to", query.To); err != nil {
		return nil, err
	}

	exercises, err := s.exerciseStore.Find(ctx, filter)
	if err != nil {
		log.Error("failed to query exercise log", "error", err, "user_id", userID)
		return nil, NewServiceError("exercise", "get_log", "failed to query exercises", err)
	}

	log.Debug("retrieved exercise log",
		"user_id", userID,
		"count", len(exercises))

	return &ExerciseLog{
		User:      *user,
		Count:     len(exercises),
		Exercises: exercises,
	}, nil
}

// parseUserID treats a malformed identifier as an unknown user.
func parseUserID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrUserNotFound
	}
	return id, nil
}

func parseBound(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return nil, domain.NewValidationError(field, "has invalid format", domain.ErrInvalidDate)
	}
	return &t, nil
}
