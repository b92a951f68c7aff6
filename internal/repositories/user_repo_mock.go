package repositories

import (
	"fmt"
	"sync"

	"diacheck/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It mirrors the sheet semantics: ids are row count + 1, rows are never
// deleted, and the profile image falls back to the default sentinel.
type MockUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, len(r.users))
	copy(userList, r.users)
	return userList, nil
}

// GetByEmail returns the first user with an exactly matching email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
}

// GetByID returns the user with the given id.
func (r *MockUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
}

// Create adds a new user, assigning the next id.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = len(r.users) + 1
	if user.ProfileImage == "" {
		user.ProfileImage = models.DefaultProfileImage
	}
	r.users = append(r.users, *user)
	return nil
}

// UpdateProfileImage overwrites the profile image of one user.
func (r *MockUserRepository) UpdateProfileImage(id int, imagePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].ProfileImage = imagePath
			return nil
		}
	}
	return fmt.Errorf("user with ID %d not found for image update: %w", id, ErrUserNotFound)
}
