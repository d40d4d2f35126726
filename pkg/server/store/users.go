package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrUserNotFound is returned when a user doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when registering an email that is
// already taken
var ErrDuplicateEmail = errors.New("email already registered")

// UsersStore abstracts user account operations
type UsersStore interface {
	// CreateUser inserts a new account.
	// Returns ErrDuplicateEmail when the email is already registered.
	CreateUser(user *model.User) error

	// FetchUserByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no account matches.
	FetchUserByEmail(email string) (*model.User, error)

	// FetchUser retrieves a user by ID.
	// Returns ErrUserNotFound if no account matches.
	FetchUser(id string) (*model.User, error)
}
