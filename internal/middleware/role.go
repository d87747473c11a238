package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meufreelas/meufreelas_be/internal/models"
	"github.com/meufreelas/meufreelas_be/internal/utils"
)

func RequireRoles(allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		if !allowedSet[claims.Role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}

		return c.Next()
	}
}
