package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Without function fields it behaves as an in-memory store.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, user *domain.User) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFn    func(ctx context.Context) ([]domain.User, error)

	// Data for default implementation
	mu          sync.Mutex
	Users       []domain.User
	CreateError error
	TxCalls     int
}

// NewMockUserStore creates a new mock store seeded with users.
func NewMockUserStore(users ...domain.User) *MockUserStore {
	return &MockUserStore{Users: users}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = append(m.Users, *user)
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.User{}, m.Users...), nil
}

// WithTx implements the UserStore interface. The mock shares state with
// its transactional copy; TxCalls counts the calls.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.mu.Lock()
	m.TxCalls++
	m.mu.Unlock()
	return m
}
