package mocks

import (
	"context"

	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/service"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserService is a mock of service.UserService for use with testify/mock
type TestifyMockUserService struct {
	mock.Mock
}

// CreateUser is a mock implementation of service.UserService.CreateUser
func (m *TestifyMockUserService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListUsers is a mock implementation of service.UserService.ListUsers
func (m *TestifyMockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestifyMockExerciseService is a mock of service.ExerciseService for use with testify/mock
type TestifyMockExerciseService struct {
	mock.Mock
}

// AddExercise is a mock implementation of service.ExerciseService.AddExercise
func (m *TestifyMockExerciseService) AddExercise(
	ctx context.Context,
	input service.AddExerciseInput,
) (*service.ExerciseEntry, error) {
	args := m.Called(ctx, input)
	if entry, ok := args.Get(0).(*service.ExerciseEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetLog is a mock implementation of service.ExerciseService.GetLog
func (m *TestifyMockExerciseService) GetLog(ctx context.Context, query service.LogQuery) (*service.ExerciseLog, error) {
	args := m.Called(ctx, query)
	if log, ok := args.Get(0).(*service.ExerciseLog); ok {
		return log, args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ service.UserService     = (*TestifyMockUserService)(nil)
	_ service.ExerciseService = (*TestifyMockExerciseService)(nil)
)
