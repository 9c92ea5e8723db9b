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

// BookingServiceInterface defines the interface for booking business logic.
type BookingServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	Get(ctx context.Context, identity model.Identity, id string) (*model.Booking, error)
	List(ctx context.Context, identity model.Identity, status, search string) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, req *model.UpdateBookingStatusRequest) (*model.Booking, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service   BookingServiceInterface
	validator *validator.Validate
}

// NewBookingHandler creates a new BookingHandler with the given service and validator.
func NewBookingHandler(svc BookingServiceInterface, v *validator.Validate) *BookingHandler {
	return &BookingHandler{service: svc, validator: v}
}

// CreateBooking handles POST /api/bookings. Open to anonymous visitors;
// capacity steering happened in the caller via the availability endpoint.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req model.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	booking, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("event_id", req.EventID).Msg("failed to create booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("event_id", booking.EventID).
		Str("email", booking.Email).
		Msg("booking created")

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListBookings handles GET /api/bookings. Staff see all bookings with
// optional ?status= and ?search= filters; other callers see their own,
// and anonymous callers are rejected outright.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.service.List(c.Context(), identityFrom(c), c.Query("status"), c.Query("search"))
	if err != nil {
		if errors.Is(err, service.ErrIdentityRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		log.Error().Err(err).Msg("failed to list bookings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(bookings)
}

// GetBooking handles GET /api/bookings/:id. Scoped the same way as
// ListBookings: staff read any booking, guests only their own.
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.service.Get(c.Context(), identityFrom(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrIdentityRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		}
		log.Error().Err(err).Str("booking_id", c.Params("id")).Msg("failed to get booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(booking)
}

// UpdateBookingStatus handles PUT /api/bookings/:id/status (staff only).
func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	booking, err := h.service.UpdateStatus(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		}
		if errors.Is(err, service.ErrBookingFinalized) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "booking already finalized"})
		}
		if errors.Is(err, service.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "invalid booking status transition"})
		}
		if errors.Is(err, service.ErrEventFull) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "event is fully booked"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("booking_id", c.Params("id")).
			Str("status", req.Status).
			Msg("failed to update booking status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Msg("booking status updated")

	return c.JSON(booking)
}
