package models

// DefaultProfileImage is served until the user uploads a photo.
const DefaultProfileImage = "/default-avatar.png"

// User represents one registered person, one row in the backing sheet.
type User struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"` // Never rendered in responses
	Age          int     `json:"age"`
	WeightKg     float64 `json:"weight"`
	HeightCm     float64 `json:"height"`
	// BMI is derived from weight and height once at registration and is
	// not recomputed afterwards.
	BMI          float64 `json:"bmi"`
	ProfileImage string  `json:"profileImage"`
}
