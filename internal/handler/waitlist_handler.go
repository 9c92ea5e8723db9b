package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/internal/service"
)

// WaitlistServiceInterface defines the interface for waitlist business logic.
type WaitlistServiceInterface interface {
	Join(ctx context.Context, req *model.JoinWaitlistRequest) (*model.WaitlistEntry, error)
	List(ctx context.Context) ([]model.WaitlistEntry, error)
}

// WaitlistHandler handles HTTP requests for waitlist operations.
type WaitlistHandler struct {
	service   WaitlistServiceInterface
	validator *validator.Validate
}

// NewWaitlistHandler creates a new WaitlistHandler with the given service and validator.
func NewWaitlistHandler(svc WaitlistServiceInterface, v *validator.Validate) *WaitlistHandler {
	return &WaitlistHandler{service: svc, validator: v}
}

// JoinWaitlist handles POST /api/waitlist.
func (h *WaitlistHandler) JoinWaitlist(c *fiber.Ctx) error {
	var req model.JoinWaitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	entry, err := h.service.Join(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("event_id", req.EventID).Msg("failed to join waitlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("entry_id", entry.ID).
		Str("event_id", entry.EventID).
		Str("email", entry.Email).
		Msg("waitlist entry created")

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListWaitlist handles GET /api/waitlist (staff only).
func (h *WaitlistHandler) ListWaitlist(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	entries, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list waitlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(entries)
}
