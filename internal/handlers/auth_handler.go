package handlers

import (
	"errors"
	"fmt"
	"log"

	"diacheck/internal/middleware"
	"diacheck/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	accountService *services.AccountService
	store          *session.Store
	validate       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService *services.AccountService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Age      int     `json:"age" validate:"required,gt=0"`
	Weight   float64 `json:"weight" validate:"required,gt=0"`
	Height   float64 `json:"height" validate:"required,gt=0"`
}

// HandleRegister handles new user registration and logs the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "All fields are required",
			"fields": errorMessages,
		})
	}

	user, err := h.accountService.Register(req.Name, req.Email, req.Password, req.Age, req.Weight, req.Height)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already registered",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("Error registering user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Registration failed. Please try again.",
			})
		}
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Printf("Error creating session after registration: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Registration failed. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      user.ID,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and establishes a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	id, err := h.accountService.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			// Identical response for unknown email and wrong password.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("Error during login for %s: %v", req.Email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Login failed. Please try again.",
			})
		}
	}

	if err := h.establishSession(c, id); err != nil {
		log.Printf("Error creating session after login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"id":      id,
	})
}

// HandleLogout destroys the session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if destroyErr := sess.Destroy(); destroyErr != nil {
			log.Printf("Error destroying session: %v", destroyErr)
		}
	}
	return c.Redirect("/")
}

// establishSession binds the authenticated id to the caller's cookie.
func (h *AuthHandler) establishSession(c *fiber.Ctx, userID int) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	sess.Set(middleware.UserIDKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
