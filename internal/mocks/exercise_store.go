package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// MockExerciseStore implements store.ExerciseStore for testing.
// Without function fields it keeps exercises in memory and applies
// filters the way the Postgres store does.
type MockExerciseStore struct {
	CreateFn func(ctx context.Context, exercise *domain.Exercise) error
	FindFn   func(ctx context.Context, filter store.ExerciseFilter) ([]domain.Exercise, error)

	mu         sync.Mutex
	Exercises  []domain.Exercise
	LastFilter store.ExerciseFilter
	TxCalls    int
}

// NewMockExerciseStore creates a new mock store seeded with exercises.
func NewMockExerciseStore(exercises ...domain.Exercise) *MockExerciseStore {
	return &MockExerciseStore{Exercises: exercises}
}

// Create implements the ExerciseStore interface
func (m *MockExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, exercise)
	}
	if err := exercise.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exercises = append(m.Exercises, *exercise)
	return nil
}

// Find implements the ExerciseStore interface
func (m *MockExerciseStore) Find(ctx context.Context, filter store.ExerciseFilter) ([]domain.Exercise, error) {
	m.mu.Lock()
	m.LastFilter = filter
	m.mu.Unlock()

	if m.FindFn != nil {
		return m.FindFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Exercise, 0)
	for _, e := range m.Exercises {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && e.Date.Before(domain.CalendarDate(*filter.From)) {
			continue
		}
		if filter.To != nil && e.Date.After(domain.CalendarDate(*filter.To)) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// WithTx implements the ExerciseStore interface
func (m *MockExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return m
}

// Count returns the number of stored exercises.
func (m *MockExerciseStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Exercises)
}
