package middleware

import (
	"errors"
	"log"
	"strings"

	"tricky-turns-backend/services"

	"github.com/gofiber/fiber/v2"
)

// PlayerAuthMiddleware resolves the Authorization header to a Pi identity
// before anything touches storage. On success it upserts the player row and
// attaches owner_id/username to the request context.
//
// 401: header missing/malformed or token rejected by the verifier.
// 403: valid token, banned player.
// 503: the verifier's upstream (Pi platform) is unreachable.
func PlayerAuthMiddleware(verifier services.TokenVerifier, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid access token",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid access token",
			})
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, services.ErrVerifierUnavailable) {
				log.Printf("🚫 [AUTH] verifier unavailable for %s: %v", c.Path(), err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "token verification temporarily unavailable",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid access token",
			})
		}

		user, err := users.EnsureUser(identity)
		if err != nil {
			log.Printf("❌ [AUTH] user upsert failed for %s: %v", identity.OwnerID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to resolve user",
			})
		}
		if user.IsBanned {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "account is banned",
			})
		}

		c.Locals("owner_id", user.OwnerID)
		c.Locals("username", user.Username)
		return c.Next()
	}
}
