package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/exercise-tracker/internal/store"
)

// PostgreSQL error codes
const (
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	invalidTextCode         = "22P02"
	numericOutOfRangeCode   = "22003"
	datetimeOverflowCode    = "22008"
)

// MapError maps a database error to the matching store error, wrapping the
// original so it stays available to errors.As.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %w",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	case invalidTextCode:
		return fmt.Errorf("%w: invalid input: %w", store.ErrInvalidEntity, err)
	case numericOutOfRangeCode, datetimeOverflowCode:
		return fmt.Errorf("%w: value out of range (%s): %w",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	}

	return err
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
