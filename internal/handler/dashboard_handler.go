package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/eventify/eventify-api/internal/model"
)

// DashboardServiceInterface defines the interface for dashboard aggregation.
type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// DashboardHandler handles HTTP requests for the staff dashboard.
type DashboardHandler struct {
	service DashboardServiceInterface
}

// NewDashboardHandler creates a new DashboardHandler with the given service.
func NewDashboardHandler(svc DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// GetStats handles GET /api/admin/dashboard (staff only).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute dashboard stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(stats)
}
