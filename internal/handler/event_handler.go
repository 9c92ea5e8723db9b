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

// EventServiceInterface defines the interface for event business logic.
type EventServiceInterface interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	AdjustBooked(ctx context.Context, id string, increment int) (*model.Event, error)
	Availability(ctx context.Context, id string) (*model.Availability, error)
}

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service   EventServiceInterface
	validator *validator.Validate
}

// NewEventHandler creates a new EventHandler with the given service and validator.
func NewEventHandler(svc EventServiceInterface, v *validator.Validate) *EventHandler {
	return &EventHandler{service: svc, validator: v}
}

// ListEvents handles GET /api/events with optional query filters.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	f := model.EventFilter{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Status:     c.Query("status"),
		Featured:   c.Query("featured") == "true",
		Search:     c.Query("search"),
	}
	events, err := h.service.List(c.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id.
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		log.Error().Err(err).Str("event_id", c.Params("id")).Msg("failed to get event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(event)
}

// GetAvailability handles GET /api/events/:id/availability. The response's
// isFull flag is what steers a guest between booking and waitlist.
func (h *EventHandler) GetAvailability(c *fiber.Ctx) error {
	availability, err := h.service.Availability(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		log.Error().Err(err).Str("event_id", c.Params("id")).Msg("failed to get availability")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(availability)
}

// CreateEvent handles POST /api/events (staff only).
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	event, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /api/events/:id (staff only).
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	event, err := h.service.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("event_id", c.Params("id")).Msg("failed to update event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id (staff only).
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		log.Error().Err(err).Str("event_id", c.Params("id")).Msg("failed to delete event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

// AdjustBooked handles PATCH /api/events/:id/booked (staff only). The
// signed increment is applied with a floor of zero.
func (h *EventHandler) AdjustBooked(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.AdjustBookedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	event, err := h.service.AdjustBooked(c.Context(), c.Params("id"), *req.Increment)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		log.Error().
			Err(err).
			Str("event_id", c.Params("id")).
			Int("increment", *req.Increment).
			Msg("failed to adjust booked count")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("event_id", event.ID).
		Int("increment", *req.Increment).
		Int("booked", event.Booked).
		Msg("booked count adjusted")

	return c.JSON(event)
}
