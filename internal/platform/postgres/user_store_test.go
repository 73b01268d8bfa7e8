package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/exercise-tracker/internal/domain"
	"github.com/phrazzld/exercise-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newMock(t *testing.T) (sqlmock.Sqlmock, *PostgresUserStore, *PostgresExerciseStore) {
	t.Helper()
	db, mock := newMockDB(t)
	return mock, NewPostgresUserStore(db, nil), NewPostgresExerciseStore(db, nil)
}

func TestNewPostgresUserStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Run("inserts valid user", func(t *testing.T) {
		mock, users, _ := newMock(t)
		user, err := domain.NewUser("fcc_test")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, username, created_at)")).
			WithArgs(user.ID, "fcc_test", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, users.Create(context.Background(), user))
	})

	t.Run("rejects invalid user without touching the database", func(t *testing.T) {
		_, users, _ := newMock(t)

		err := users.Create(context.Background(), &domain.User{ID: uuid.New()})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, users, _ := newMock(t)
		id := uuid.New()
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, created_at")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
				AddRow(id.String(), "alice", created))

		user, err := users.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, created, user.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock, users, _ := newMock(t)
		id := uuid.New()

		mock.ExpectQuery("SELECT id, username, created_at").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}))

		user, err := users.GetByID(context.Background(), id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("database error", func(t *testing.T) {
		mock, users, _ := newMock(t)
		id := uuid.New()
		dbErr := errors.New("connection reset")

		mock.ExpectQuery("SELECT id, username, created_at").
			WithArgs(id).
			WillReturnError(dbErr)

		_, err := users.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresUserStore_List(t *testing.T) {
	t.Run("returns users in insertion order", func(t *testing.T) {
		mock, users, _ := newMock(t)
		first, second := uuid.New(), uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery("ORDER BY seq").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
				AddRow(first.String(), "first", now).
				AddRow(second.String(), "second", now))

		got, err := users.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0].ID)
		assert.Equal(t, "second", got[1].Username)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		mock, users, _ := newMock(t)

		mock.ExpectQuery("ORDER BY seq").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}))

		got, err := users.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("scan failure", func(t *testing.T) {
		mock, users, _ := newMock(t)

		mock.ExpectQuery("ORDER BY seq").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at"}).
				AddRow("not-a-uuid", "bad", time.Now()))

		_, err := users.List(context.Background())
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "list", storeErr.Operation)
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	users := NewPostgresUserStore(db, nil)
	user, err := domain.NewUser("in-tx")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, users.WithTx(tx).Create(context.Background(), user))
	require.NoError(t, tx.Commit())
}
