package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/meufreelas/meufreelas_be/internal/services/account"
)

type HealthHandler struct {
	Accounts *account.Service
}

// Health mirrors the uptime probe the painel consumes: database
// reachability, env completeness and the user count.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	missing := []string{}
	for _, k := range []string{"DB_DSN", "JWT_SECRET"} {
		if os.Getenv(k) == "" {
			missing = append(missing, k)
		}
	}

	database := "on"
	usersCount, err := h.Accounts.CountUsers(c.Context())
	if err != nil {
		database = "init"
		usersCount = 0
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"database":   database,
		"env_ok":     len(missing) == 0,
		"missing":    missing,
		"usersCount": usersCount,
	})
}
