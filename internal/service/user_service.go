package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/events"
	"github.com/phrazzld/exercise-tracker/internal/platform/logger"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// UserService provides the user directory operations.
type UserService interface {
	// CreateUser creates a user with the given username.
	// Returns a domain validation error if the username is blank.
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns every user in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	emitter   events.EventEmitter
	metrics   MetricsRecorder
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// emitter and metrics may be nil.
func NewUserService(
	userStore store.UserStore,
	emitter events.EventEmitter,
	metrics MetricsRecorder,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UserServiceImpl{
		userStore: userStore,
		emitter:   emitter,
		metrics:   metrics,
		logger:    logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// CreateUser creates and persists a new user.
func (s *UserServiceImpl) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username)
	if err != nil {
		log.Debug("rejected user creation", "error", err)
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		log.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return nil, NewServiceError("user", "create_user", "failed to save user", err)
	}

	s.metrics.UserCreated()
	log.Info("user created", "user_id", user.ID)

	publish(ctx, log, s.emitter, events.TypeUserCreated, user.ID.String(), events.UserCreatedPayload{
		UserID:   user.ID,
		Username: user.Username,
	})

	return user, nil
}

// ListUsers returns all users.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.userStore.List(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		return nil, NewServiceError("user", "list_users", "failed to list users", err)
	}

	log.Debug("listed users", "count", len(users))
	return users, nil
}

// publish emits an event if an emitter is configured. Failures are logged,
// never returned.
func publish(ctx context.Context, log *slog.Logger, emitter events.EventEmitter, eventType, key string, payload any) {
	if emitter == nil {
		return
	}

	event, err := events.NewEvent(eventType, key, payload)
	if err != nil {
		log.Error("failed to build event", "error", err, "event_type", eventType)
		return
	}

	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit event",
			"error", err,
			"event_id", event.ID,
			"event_type", eventType)
	}
}
