package middleware

import (
	"errors"
	"strings"

	"tricky-turns-backend/services"

	"github.com/gofiber/fiber/v2"
)

// AdminAuthMiddleware gates the admin console. The session token is read
// from the admin_session cookie or an Authorization bearer header and
// resolved against the admin_sessions table, so it survives restarts and
// works across multiple instances. Expiry is checked on every request.
func AdminAuthMiddleware(admins *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(services.AdminSessionCookie)
		if token == "" {
			authHeader := c.Get("Authorization")
			if trimmed := strings.TrimPrefix(authHeader, "Bearer "); trimmed != authHeader {
				token = trimmed
			}
		}

		admin, err := admins.CurrentAdmin(token)
		if err != nil {
			if errors.Is(err, services.ErrAdminInactive) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated as admin"})
		}

		c.Locals("admin", admin)
		c.Locals("admin_token", token)
		return c.Next()
	}
}
