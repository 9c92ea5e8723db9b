package model

import "time"

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingApproved || s == BookingRejected
}

// CanTransitionTo reports whether the transition s -> next is legal.
// Only pending -> approved and pending -> rejected are legal; terminal
// states accept nothing, so re-approving a booking can never double-count
// event capacity.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && next.IsTerminal()
}

// Booking is a guest's request to attend an event. It is created in
// pending and transitioned exactly once by staff to approved or rejected.
// TicketID is set if and only if the booking is approved.
type Booking struct {
	ID                string        `json:"id"`
	EventID           string        `json:"eventId"`
	EventName         string        `json:"eventName"`
	FullName          string        `json:"fullName"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Address           string        `json:"address"`
	PaidAmount        float64       `json:"paidAmount"`
	TransactionID     string        `json:"transactionId"`
	PaymentScreenshot string        `json:"paymentScreenshot"` // object-store URL
	Status            BookingStatus `json:"status"`
	BookingDate       string        `json:"bookingDate"` // creation date, not the event date
	AdminNotes        string        `json:"adminNotes"`
	TicketID          *string       `json:"ticketId"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// CreateBookingRequest is the DTO for creating a booking.
// PaidAmount is guest-declared and not verified against the event price.
type CreateBookingRequest struct {
	EventID           string  `json:"eventId" validate:"required,notblank"`
	FullName          string  `json:"fullName" validate:"required,notblank,max=255"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required,notblank,max=32"`
	Address           string  `json:"address"`
	PaidAmount        float64 `json:"paidAmount" validate:"gte=0"`
	TransactionID     string  `json:"transactionId"`
	PaymentScreenshot string  `json:"paymentScreenshot"`
}

// UpdateBookingStatusRequest is the staff DTO for driving the booking
// state machine. TicketID is only meaningful when approving.
type UpdateBookingStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminNotes *string `json:"adminNotes"`
	TicketID   string  `json:"ticketId"`
}

// BookingFilter narrows the booking listing. Email scopes the listing to
// one guest (set for non-staff callers); Search matches case-insensitively
// against guest name, email and event name.
type BookingFilter struct {
	Email  string
	Status string
	Search string
}

// BookingNotification is the payload published to the notification queue
// when a booking is received. Delivery to the guest's inbox is a
// downstream consumer's concern.
type BookingNotification struct {
	BookingID     string  `json:"booking_id"`
	EventID       string  `json:"event_id"`
	EventName     string  `json:"event_name"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	BookingDate   string  `json:"booking_date"`
	PaidAmount    float64 `json:"paid_amount"`
	TransactionID string  `json:"transaction_id"`
}
