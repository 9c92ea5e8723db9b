package model

import "time"

// PromoCode is a staff-issued discount code. CurrentUses counts
// redemptions against MaxUses; Validate never mutates it — redemption is
// a separate, explicit operation.
type PromoCode struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"` // stored upper-case
	DiscountPercent int       `json:"discountPercent"`
	MaxUses         int       `json:"maxUses"`
	CurrentUses     int       `json:"currentUses"`
	MinimumAmount   float64   `json:"minimumAmount"`
	ExpiryDate      string    `json:"expiryDate"` // "" or YYYY-MM-DD
	Description     string    `json:"description"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CreatePromoRequest is the DTO for creating a promo code.
type CreatePromoRequest struct {
	Code            string  `json:"code" validate:"required,notblank,promocode,max=64"`
	DiscountPercent *int    `json:"discountPercent" validate:"required,gte=1,lte=100"`
	MaxUses         *int    `json:"maxUses" validate:"required,gte=1"`
	MinimumAmount   float64 `json:"minimumAmount" validate:"gte=0"`
	ExpiryDate      string  `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	Description     string  `json:"description"`
	IsActive        *bool   `json:"isActive"`
}

// UpdatePromoRequest replaces a promo code's fields (PUT semantics).
type UpdatePromoRequest = CreatePromoRequest

// ValidatePromoRequest is the checkout DTO for promo validation.
type ValidatePromoRequest struct {
	Code   string   `json:"code" validate:"required,notblank,max=64"`
	Amount *float64 `json:"amount" validate:"required,gt=0"`
}

// RedeemPromoRequest is the DTO for counting a redemption against the
// usage cap once a booking completes.
type RedeemPromoRequest struct {
	Code string `json:"code" validate:"required,notblank,max=64"`
}

// PromoValidationResult is the successful validation response.
type PromoValidationResult struct {
	Valid           bool    `json:"valid"`
	DiscountPercent int     `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	FinalAmount     float64 `json:"finalAmount"`
}
