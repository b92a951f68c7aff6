package services

import (
	"errors"
	"fmt"

	"diacheck/internal/models"
	"diacheck/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Error kinds surfaced to the HTTP layer. Handlers match these with
// errors.Is to pick a status code; anything else is a backend failure and
// is reported generically.
var (
	// ErrValidation covers missing or malformed caller input.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateEmail is returned when registering an email that exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AccountService handles registration, authentication and profile access.
type AccountService struct {
	userRepo repositories.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repositories.UserRepository) *AccountService {
	return &AccountService{
		userRepo: userRepo,
	}
}

// Register validates the input, rejects duplicate emails, hashes the
// password and appends the new user. BMI is computed here, once; it is not
// recomputed if weight or height ever change.
func (s *AccountService) Register(name, email, password string, age int, weightKg, heightCm float64) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if age <= 0 || weightKg <= 0 || heightCm <= 0 {
		return nil, fmt.Errorf("%w: age, weight and height must be positive", ErrValidation)
	}

	// Uniqueness is a full scan at registration time only. Two racing
	// registrations can still both pass this check; the repository mutex
	// narrows the window but the backing store has no unique constraint.
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	heightM := heightCm / 100
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Age:          age,
		WeightKg:     weightKg,
		HeightCm:     heightCm,
		BMI:          weightKg / (heightM * heightM),
		ProfileImage: models.DefaultProfileImage,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the user's id.
func (s *AccountService) Authenticate(email, password string) (int, error) {
	if email == "" || password == "" {
		return 0, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same error as a password mismatch below.
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// GetProfile returns the user record for the given id.
func (s *AccountService) GetProfile(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// SetProfileImage records the public path of an uploaded profile image.
func (s *AccountService) SetProfileImage(id int, imagePath string) error {
	return s.userRepo.UpdateProfileImage(id, imagePath)
}
