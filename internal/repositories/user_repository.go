package repositories

import (
	"errors"

	"diacheck/internal/models"
)

// ErrUserNotFound is returned by lookups when no row matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// GetAll fetches every registered user.
	GetAll() ([]models.User, error)
	// GetByEmail returns the first user with an exactly matching email,
	// or ErrUserNotFound.
	GetByEmail(email string) (*models.User, error)
	// GetByID returns the user with the given id, or ErrUserNotFound.
	GetByID(id int) (*models.User, error)
	// Create appends a new user and assigns user.ID.
	Create(user *models.User) error
	// UpdateProfileImage overwrites the profile image cell of one user.
	// Returns ErrUserNotFound if the id is absent.
	UpdateProfileImage(id int, imagePath string) error
}
