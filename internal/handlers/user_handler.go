package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"diacheck/internal/middleware"
	"diacheck/internal/repositories"
	"diacheck/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadSize caps profile images at 5MB.
const maxUploadSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	accountService *services.AccountService
	uploadDir      string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *services.AccountService, uploadDir string) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		uploadDir:      uploadDir,
	}
}

// RegisterRoutes registers the profile routes. The router is expected to be
// guarded by the login middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/user", h.HandleGetProfile)
	router.Post("/upload-profile-image", h.HandleUploadProfileImage)
}

// HandleGetProfile returns the authenticated user's record.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	user, err := h.accountService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Error fetching user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch user data",
		})
	}

	return c.JSON(user)
}

// HandleUploadProfileImage stores an uploaded image and records its public
// path on the user's row.
func (h *UserHandler) HandleUploadProfileImage(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(int)

	file, err := c.FormFile("profileImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image must be smaller than 5MB",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only image files are allowed",
		})
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Error creating upload directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	filename := "profile-" + uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		log.Printf("Error saving uploaded image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	imageURL := "/uploads/" + filename
	if err := h.accountService.SetProfileImage(userID, imageURL); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Error recording profile image for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"imageUrl": imageURL,
	})
}
