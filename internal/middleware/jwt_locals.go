package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meufreelas/meufreelas_be/internal/utils"
)

// AttachJWTLocals copies the identity id and role out of the parsed
// session claims so downstream handlers read c.Locals("userId") without
// touching jwt types.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}
