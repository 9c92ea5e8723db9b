package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEventNotFound is returned when an event cannot be found
	ErrEventNotFound = errors.New("event not found")

	// ErrEventFull is returned when a booking approval would exceed event capacity
	ErrEventFull = errors.New("event is fully booked")

	// ErrBookingNotFound is returned when a booking cannot be found
	ErrBookingNotFound = errors.New("booking not found")

	// ErrIdentityRequired is returned when a caller without an identity
	// attempts an operation scoped to the caller's own bookings
	ErrIdentityRequired = errors.New("caller identity required")

	// ErrBookingFinalized is returned when a transition is attempted on a
	// booking already in a terminal state (approved or rejected)
	ErrBookingFinalized = errors.New("booking already finalized")

	// ErrInvalidTransition is returned for transitions the state machine
	// does not define (e.g. pending -> pending)
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrPromoNotFound is returned when a promo code cannot be found
	ErrPromoNotFound = errors.New("promo code not found")

	// ErrPromoExists is returned when creating a promo code that already exists
	ErrPromoExists = errors.New("promo code already exists")

	// ErrPromoInactive is returned when validating a deactivated promo code
	ErrPromoInactive = errors.New("promo code is inactive")

	// ErrPromoUsageLimit is returned when a promo code's usage cap is exhausted
	ErrPromoUsageLimit = errors.New("promo code usage limit reached")

	// ErrPromoExpired is returned when a promo code's expiry date has passed
	ErrPromoExpired = errors.New("promo code has expired")

	// ErrPromoBelowMinimum is returned when the amount is below the promo's minimum
	ErrPromoBelowMinimum = errors.New("amount is below the promo code minimum")
)
