package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise is a single logged activity belonging to a user.
// Ownership is by reference only: the user is checked to exist when the
// exercise is created and never again.
type Exercise struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Duration    int
	Date        time.Time
	CreatedAt   time.Time
}

// NewExercise creates a new Exercise for the given user.
// The date is normalized to a calendar date (UTC midnight). A zero date
// means "today".
func NewExercise(userID uuid.UUID, description string, duration int, date time.Time) (*Exercise, error) {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}

	exercise := &Exercise{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        CalendarDate(date),
		CreatedAt:   now,
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyExerciseID)
	}

	if e.UserID == uuid.Nil {
		return NewValidationError("_id", "is required", ErrEmptyUserID)
	}

	if strings.TrimSpace(e.Description) == "" {
		return NewValidationError("description", "is required", ErrEmptyDescription)
	}

	if e.Date.IsZero() {
		return NewValidationError("date", "is required", ErrEmptyDate)
	}

	return nil
}

// FormattedDate returns the exercise date in the human-readable form used
// by the API, e.g. "Mon Jan 15 2023".
func (e *Exercise) FormattedDate() string {
	return FormatDate(e.Date)
}
