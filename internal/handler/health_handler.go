package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// DBPinger reports whether the backing store is reachable.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers GET /health for load balancers and orchestrators.
type HealthHandler struct {
	db DBPinger
}

// NewHealthHandler creates a HealthHandler that pings the given database.
func NewHealthHandler(db DBPinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports liveness. The check is the database ping alone: the
// notification broker is optional and best-effort, so its reachability is
// not a liveness criterion. Returns 503 when the database is unreachable.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		log.Error().Err(err).Msg("health check: database unreachable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "down",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "up",
	})
}
