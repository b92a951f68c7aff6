package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// UserIDKey is the session and locals key holding the authenticated user id.
const UserIDKey = "user_id"

// LoginRequired is a Fiber middleware that rejects requests without an
// authenticated session.
func LoginRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Session unavailable",
			})
		}

		userID, ok := sess.Get(UserIDKey).(int)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		// Store the id in Fiber context for subsequent handlers
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
