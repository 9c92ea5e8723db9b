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

// PromoServiceInterface defines the interface for promo code business logic.
type PromoServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	Update(ctx context.Context, id string, req *model.UpdatePromoRequest) (*model.PromoCode, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error)
	Redeem(ctx context.Context, code string) error
}

// PromoHandler handles HTTP requests for promo code operations.
type PromoHandler struct {
	service   PromoServiceInterface
	validator *validator.Validate
}

// NewPromoHandler creates a new PromoHandler with the given service and validator.
func NewPromoHandler(svc PromoServiceInterface, v *validator.Validate) *PromoHandler {
	return &PromoHandler{service: svc, validator: v}
}

// ListPromos handles GET /api/promos (staff only).
func (h *PromoHandler) ListPromos(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	promos, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list promo codes")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(promos)
}

// CreatePromo handles POST /api/promos (staff only).
func (h *PromoHandler) CreatePromo(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.CreatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	promo, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPromoExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "promo code already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to create promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(promo)
}

// UpdatePromo handles PUT /api/promos/:id (staff only).
func (h *PromoHandler) UpdatePromo(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req model.UpdatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	promo, err := h.service.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "promo code not found"})
		}
		if errors.Is(err, service.ErrPromoExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "promo code already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("promo_id", c.Params("id")).Msg("failed to update promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(promo)
}

// DeletePromo handles DELETE /api/promos/:id (staff only).
func (h *PromoHandler) DeletePromo(c *fiber.Ctx) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "promo code not found"})
		}
		log.Error().Err(err).Str("promo_id", c.Params("id")).Msg("failed to delete promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"message": "promo code deleted"})
}

// ValidatePromo handles POST /api/promos/validate. Each rejection reason
// maps to its own message so the checkout UI can show the specific cause.
func (h *PromoHandler) ValidatePromo(c *fiber.Ctx) error {
	var req model.ValidatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	result, err := h.service.Validate(c.Context(), req.Code, *req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "promo code not found"})
		case errors.Is(err, service.ErrPromoInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "promo code is inactive"})
		case errors.Is(err, service.ErrPromoUsageLimit):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "promo code usage limit reached"})
		case errors.Is(err, service.ErrPromoExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "promo code has expired"})
		case errors.Is(err, service.ErrPromoBelowMinimum):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount is below the promo code minimum"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to validate promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(result)
}

// RedeemPromo handles POST /api/promos/redeem, invoked by the checkout flow
// after a booking with the code goes through.
func (h *PromoHandler) RedeemPromo(c *fiber.Ctx) error {
	var req model.RedeemPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	if err := h.service.Redeem(c.Context(), req.Code); err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "promo code not found"})
		}
		if errors.Is(err, service.ErrPromoUsageLimit) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "promo code usage limit reached"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to redeem promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("code", req.Code).Msg("promo code redeemed")
	return c.Status(fiber.StatusOK).Send(nil)
}
