package repositories

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"diacheck/internal/models"
	"diacheck/pkg/sheets"
)

// Sheet layout. Columns A-I: id, name, email, passwordHash, age, weightKg,
// heightCm, bmi, profileImagePath. Row 1 is the header, data starts at row 2.
const (
	userDataRange   = "Users!A2:I"
	userAppendRange = "Users!A:I"
	UserHeaderRange = "Users!A1:I1"

	profileImageColumn = "I"
	firstDataRow       = 2
)

// UserHeader is the header row written once on an empty sheet.
var UserHeader = []interface{}{
	"id", "name", "email", "passwordHash", "age", "weightKg", "heightCm", "bmi", "profileImagePath",
}

// SheetUserRepository is a Google Sheets implementation of UserRepository.
// Every call is a full remote round trip; there is no caching. Mutations
// are serialized behind a mutex so the read-then-write sequences (id
// assignment, row location) cannot interleave within this process.
type SheetUserRepository struct {
	api sheets.API
	// strictReads: when false, a failed full-table read is logged and an
	// empty table is returned, matching the legacy system. When true the
	// error propagates.
	strictReads bool
	mu          sync.Mutex
}

// NewSheetUserRepository creates a new instance of SheetUserRepository.
func NewSheetUserRepository(api sheets.API, strictReads bool) *SheetUserRepository {
	return &SheetUserRepository{
		api:         api,
		strictReads: strictReads,
	}
}

// GetAll retrieves every user row from the sheet.
func (r *SheetUserRepository) GetAll() ([]models.User, error) {
	rows, err := r.fetchRows()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}
	return users, nil
}

// GetByEmail retrieves the first user whose email matches exactly.
// Matching is case-sensitive.
func (r *SheetUserRepository) GetByEmail(email string) (*models.User, error) {
	rows, err := r.fetchRows()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if cellString(row, colEmail) == email {
			user := rowToUser(row)
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
}

// GetByID retrieves a user by id. Ids are compared as strings against the
// id column, so the stored formatting must match exactly.
func (r *SheetUserRepository) GetByID(id int) (*models.User, error) {
	rows, err := r.fetchRows()
	if err != nil {
		return nil, err
	}

	want := strconv.Itoa(id)
	for _, row := range rows {
		if cellString(row, colID) == want {
			user := rowToUser(row)
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
}

// Create assigns the next id (current row count + 1) and appends the user.
// The count-then-append pair is not atomic across processes; the mutex only
// serializes callers within this one.
func (r *SheetUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.fetchRows()
	if err != nil {
		return fmt.Errorf("failed to count existing users: %w", err)
	}
	user.ID = len(rows) + 1

	row := []interface{}{
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.WeightKg,
		user.HeightCm,
		user.BMI,
		user.ProfileImage,
	}
	if err := r.api.AppendRow(userAppendRange, row); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateProfileImage locates the user's row and overwrites the profile
// image cell in place.
func (r *SheetUserRepository) UpdateProfileImage(id int, imagePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.fetchRows()
	if err != nil {
		return fmt.Errorf("failed to locate user row: %w", err)
	}

	want := strconv.Itoa(id)
	for i, row := range rows {
		if cellString(row, colID) != want {
			continue
		}
		cell := fmt.Sprintf("Users!%s%d", profileImageColumn, firstDataRow+i)
		if err := r.api.UpdateCell(cell, imagePath); err != nil {
			return fmt.Errorf("failed to update profile image for user %d: %w", id, err)
		}
		return nil
	}
	return fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
}

// fetchRows reads the whole data range, applying the configured lenient or
// strict failure behavior.
func (r *SheetUserRepository) fetchRows() ([][]interface{}, error) {
	rows, err := r.api.ReadRows(userDataRange)
	if err != nil {
		if r.strictReads {
			return nil, fmt.Errorf("failed to fetch users: %w", err)
		}
		log.Printf("Error fetching users, treating table as empty: %v", err)
		return nil, nil
	}
	return rows, nil
}

// Column ordinals within a data row.
const (
	colID = iota
	colName
	colEmail
	colPasswordHash
	colAge
	colWeightKg
	colHeightCm
	colBMI
	colProfileImage
)

// rowToUser converts a raw sheet row to a User. Rows can be ragged (the
// profile image column is absent until first set) and cells arrive untyped,
// so every field is parsed defensively from its string form.
func rowToUser(row []interface{}) models.User {
	user := models.User{
		Name:         cellString(row, colName),
		Email:        cellString(row, colEmail),
		PasswordHash: cellString(row, colPasswordHash),
		ProfileImage: cellString(row, colProfileImage),
	}
	user.ID, _ = strconv.Atoi(cellString(row, colID))
	user.Age, _ = strconv.Atoi(cellString(row, colAge))
	user.WeightKg, _ = strconv.ParseFloat(cellString(row, colWeightKg), 64)
	user.HeightCm, _ = strconv.ParseFloat(cellString(row, colHeightCm), 64)
	user.BMI, _ = strconv.ParseFloat(cellString(row, colBMI), 64)

	if user.ProfileImage == "" {
		user.ProfileImage = models.DefaultProfileImage
	}
	return user
}

func cellString(row []interface{}, col int) string {
	if col >= len(row) || row[col] == nil {
		return ""
	}
	return fmt.Sprint(row[col])
}
