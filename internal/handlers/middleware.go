package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/auth"
)

// RequireToken rejects requests without a valid bearer token. The token's
// subject is stored in c.Locals("subject").
func RequireToken(tokens auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("subject", claims.Subject)
		return c.Next()
	}
}
