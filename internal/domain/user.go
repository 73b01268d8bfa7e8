package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a person whose exercises are tracked.
// Usernames are not unique; the ID is the only identity.
type User struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
}

// NewUser creates a new User with the given username.
// It generates a new UUID for the user and sets the creation timestamp.
// The username is stored exactly as given; a blank one fails validation.
func NewUser(username string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("_id", "is required", ErrEmptyUserID)
	}

	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}

	return nil
}
