package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventify/eventify-api/internal/model"
)

// PromoRepositoryInterface defines the interface for promo code data access.
type PromoRepositoryInterface interface {
	Insert(ctx context.Context, p *model.PromoCode) error
	List(ctx context.Context) ([]model.PromoCode, error)
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	Update(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error)
	Delete(ctx context.Context, id string) error
	IncrementUses(ctx context.Context, code string) error
}

// PromoService provides business logic for promo codes: staff CRUD, the
// read-only checkout validation, and explicit redemption bookkeeping.
type PromoService struct {
	promos PromoRepositoryInterface
	now    func() time.Time
}

// NewPromoService creates a new PromoService with the given repository.
func NewPromoService(promos PromoRepositoryInterface) *PromoService {
	return &PromoService{promos: promos, now: time.Now}
}

// NewPromoServiceWithClock creates a PromoService with a custom clock.
// Primarily used for testing expiry behavior.
func NewPromoServiceWithClock(promos PromoRepositoryInterface, now func() time.Time) *PromoService {
	return &PromoService{promos: promos, now: now}
}

// round2 rounds to two decimal places using standard rounding.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func promoFromRequest(id string, req *model.CreatePromoRequest) *model.PromoCode {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &model.PromoCode{
		ID:              id,
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountPercent: *req.DiscountPercent,
		MaxUses:         *req.MaxUses,
		MinimumAmount:   req.MinimumAmount,
		ExpiryDate:      req.ExpiryDate,
		Description:     req.Description,
		IsActive:        active,
	}
}

// Create creates a new promo code. Codes are normalized to upper-case.
// Returns ErrPromoExists if the code is already taken.
func (s *PromoService) Create(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
	if req == nil || req.DiscountPercent == nil || req.MaxUses == nil {
		return nil, ErrInvalidRequest
	}
	promo := promoFromRequest(uuid.NewString(), req)
	if err := s.promos.Insert(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// List returns all promo codes, newest first.
func (s *PromoService) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.promos.List(ctx)
}

// Update replaces a promo code's fields and returns the stored row, so
// the response carries the live usage count and creation time. CurrentUses
// is never writable through this path; it moves only via Redeem.
// Returns ErrPromoNotFound if the id doesn't resolve.
func (s *PromoService) Update(ctx context.Context, id string, req *model.UpdatePromoRequest) (*model.PromoCode, error) {
	if req == nil || req.DiscountPercent == nil || req.MaxUses == nil {
		return nil, ErrInvalidRequest
	}
	return s.promos.Update(ctx, promoFromRequest(id, req))
}

// Delete removes a promo code.
// Returns ErrPromoNotFound if the id doesn't resolve.
func (s *PromoService) Delete(ctx context.Context, id string) error {
	return s.promos.Delete(ctx, id)
}

// Validate checks a code against an amount and computes the discount.
// Guards run in order, each with its own error so the checkout UI can show
// the specific reason:
//   - ErrPromoNotFound: unknown code
//   - ErrPromoInactive: code deactivated by staff
//   - ErrPromoUsageLimit: current_uses >= max_uses
//   - ErrPromoExpired: expiry date strictly in the past (date precision,
//     not datetime: a code expiring today is still valid)
//   - ErrPromoBelowMinimum: amount under the code's minimum
//
// Validation is read-only with respect to usage counting; Redeem does that.
func (s *PromoService) Validate(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidRequest
	}

	promo, err := s.promos.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("get promo code: %w", err)
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	if !promo.IsActive {
		return nil, ErrPromoInactive
	}
	if promo.CurrentUses >= promo.MaxUses {
		return nil, ErrPromoUsageLimit
	}
	if promo.ExpiryDate != "" {
		expiry, err := time.ParseInLocation("2006-01-02", promo.ExpiryDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse expiry date %q: %w", promo.ExpiryDate, err)
		}
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if expiry.Before(today) {
			return nil, ErrPromoExpired
		}
	}
	if promo.MinimumAmount > 0 && amount < promo.MinimumAmount {
		return nil, ErrPromoBelowMinimum
	}

	discount := round2(amount * float64(promo.DiscountPercent) / 100)
	return &model.PromoValidationResult{
		Valid:           true,
		DiscountPercent: promo.DiscountPercent,
		DiscountAmount:  discount,
		FinalAmount:     round2(amount - discount),
	}, nil
}

// Redeem counts one use of a code against its cap. Invoked by the checkout
// flow once a booking with the code goes through. The underlying update is
// conditional, so concurrent redemptions stop exactly at max_uses.
// Returns:
//   - ErrPromoNotFound if the code doesn't exist
//   - ErrPromoUsageLimit if the cap is exhausted (or the code is inactive)
func (s *PromoService) Redeem(ctx context.Context, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	err := s.promos.IncrementUses(ctx, normalized)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPromoUsageLimit) {
		return err
	}
	// The conditional update rejected the row; find out whether the code
	// exists at all so callers can distinguish the two.
	promo, getErr := s.promos.GetByCode(ctx, normalized)
	if getErr != nil {
		return fmt.Errorf("get promo code: %w", getErr)
	}
	if promo == nil {
		return ErrPromoNotFound
	}
	return ErrPromoUsageLimit
}
