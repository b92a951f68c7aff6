package repositories_test

import (
	"fmt"
	"testing"

	"diacheck/internal/models"
	"diacheck/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSheetsAPI is a mock implementation of sheets.API
type MockSheetsAPI struct {
	mock.Mock
}

func (m *MockSheetsAPI) ReadRows(readRange string) ([][]interface{}, error) {
	args := m.Called(readRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]interface{}), args.Error(1)
}

func (m *MockSheetsAPI) AppendRow(appendRange string, row []interface{}) error {
	args := m.Called(appendRange, row)
	return args.Error(0)
}

func (m *MockSheetsAPI) UpdateCell(cellRange string, value interface{}) error {
	args := m.Called(cellRange, value)
	return args.Error(0)
}

// Two sheet rows as the Values API returns them: everything stringly typed,
// the second row missing its profile image cell.
func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"1", "Alice", "alice@example.com", "$2a$10$hashA", "30", "70", "175", "22.857142857142858", "/uploads/profile-1.png"},
		{"2", "Bob", "bob@example.com", "$2a$10$hashB", "52", "90.5", "180", "27.932098765432098"},
	}
}

func TestSheetUserRepository_GetByEmail(t *testing.T) {
	api := new(MockSheetsAPI)
	repo := repositories.NewSheetUserRepository(api, false)

	api.On("ReadRows", "Users!A2:I").Return(sampleRows(), nil)

	user, err := repo.GetByEmail("bob@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, 52, user.Age)
	assert.InDelta(t, 90.5, user.WeightKg, 1e-9)
	assert.InDelta(t, 27.93, user.BMI, 0.01)
	// Missing image cell falls back to the sentinel.
	assert.Equal(t, models.DefaultProfileImage, user.ProfileImage)

	// Matching is exact and case-sensitive.
	_, err = repo.GetByEmail("BOB@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestSheetUserRepository_GetByID(t *testing.T) {
	api := new(MockSheetsAPI)
	repo := repositories.NewSheetUserRepository(api, false)

	api.On("ReadRows", "Users!A2:I").Return(sampleRows(), nil)

	user, err := repo.GetByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "/uploads/profile-1.png", user.ProfileImage)

	_, err = repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestSheetUserRepository_Create(t *testing.T) {
	api := new(MockSheetsAPI)
	repo := repositories.NewSheetUserRepository(api, false)

	api.On("ReadRows", "Users!A2:I").Return(sampleRows(), nil).Once()
	api.On("AppendRow", "Users!A:I", mock.MatchedBy(func(row []interface{}) bool {
		return len(row) == 9 && row[0] == 3 && row[2] == "carol@example.com"
	})).Return(nil).Once()

	user := &models.User{
		Name:         "Carol",
		Email:        "carol@example.com",
		PasswordHash: "$2a$10$hashC",
		Age:          28,
		WeightKg:     60,
		HeightCm:     165,
		BMI:          22.03,
		ProfileImage: models.DefaultProfileImage,
	}
	err := repo.Create(user)
	assert.NoError(t, err)
	// Next id is row count + 1.
	assert.Equal(t, 3, user.ID)
	api.AssertExpectations(t)
}

func TestSheetUserRepository_UpdateProfileImage(t *testing.T) {
	api := new(MockSheetsAPI)
	repo := repositories.NewSheetUserRepository(api, false)

	// Bob is the second data row, so his image cell is I3.
	api.On("ReadRows", "Users!A2:I").Return(sampleRows(), nil)
	api.On("UpdateCell", "Users!I3", "/uploads/profile-new.png").Return(nil).Once()

	err := repo.UpdateProfileImage(2, "/uploads/profile-new.png")
	assert.NoError(t, err)
	api.AssertExpectations(t)

	err = repo.UpdateProfileImage(42, "/uploads/profile-new.png")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestSheetUserRepository_ReadFailureModes(t *testing.T) {
	backendErr := fmt.Errorf("googleapi: Error 503")

	// Lenient (legacy) mode: the table reads as empty.
	api := new(MockSheetsAPI)
	lenient := repositories.NewSheetUserRepository(api, false)
	api.On("ReadRows", "Users!A2:I").Return(nil, backendErr)

	users, err := lenient.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, users)

	// Strict mode propagates the failure.
	strictAPI := new(MockSheetsAPI)
	strict := repositories.NewSheetUserRepository(strictAPI, true)
	strictAPI.On("ReadRows", "Users!A2:I").Return(nil, backendErr)

	_, err = strict.GetAll()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch users")
}
