package middleware

import (
	"errors"
	"log"
	"strings"

	"myflix/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CurrentUserKey is the context key under which AuthRequired stores the
// verified user record for downstream handlers.
const CurrentUserKey = "currentUser"

// AuthRequired is a Fiber middleware that verifies the bearer token and
// attaches the resolved identity to the request context. Malformed, badly
// signed, expired, and orphaned tokens all produce the same 401 body so a
// caller cannot tell which check rejected them.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c)
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			switch {
			case errors.Is(err, services.ErrMalformedToken),
				errors.Is(err, services.ErrInvalidSignature),
				errors.Is(err, services.ErrTokenExpired),
				errors.Is(err, services.ErrUnknownSubject):
				return unauthorized(c)
			default:
				// Storage failure during subject resolution, not an auth verdict
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Something went wrong!",
				})
			}
		}

		// Store the resolved identity in the Fiber context for subsequent handlers
		c.Locals(CurrentUserKey, user)
		c.Locals("username", user.Username)
		c.Locals("user_id", user.ID)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Invalid or expired token",
	})
}
