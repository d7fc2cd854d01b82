package middleware

import (
	"project/backend/config"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the c.Locals key under which AuthMiddleware stores the
// verified token claims.
const ClaimsKey = "claims"

// AuthMiddleware verifies the bearer token and stashes the claims in the
// request context. Claims carry the identity embedded at issue time; they
// are not re-checked against the users table.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// CurrentClaims returns the claims stored by AuthMiddleware, or nil when
// the route is not behind it.
func CurrentClaims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(ClaimsKey).(*utils.Claims)
	return claims
}
