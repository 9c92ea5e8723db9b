// Package model defines the core domain types and API DTOs for the
// event-booking system.
package model

import "time"

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventDraft     EventStatus = "draft"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventActive, EventDraft, EventCancelled, EventCompleted:
		return true
	}
	return false
}

// Event represents a bookable event managed by staff.
// Booked is the capacity ledger: it is mutated only through booking
// approval and the explicit staff correction endpoint.
type Event struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	Location        string      `json:"location"`
	Venue           string      `json:"venue"`
	Date            string      `json:"date"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	Price           float64     `json:"price"`
	Capacity        int         `json:"capacity"`
	Booked          int         `json:"booked"`
	BookingDeadline string      `json:"bookingDeadline,omitempty"` // advisory, not enforced
	Description     string      `json:"description"`
	Instructor      string      `json:"instructor"`
	Difficulty      string      `json:"difficulty"`
	Status          EventStatus `json:"status"`
	Featured        bool        `json:"featured"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Remaining returns the number of available seats, floored at zero so a
// stale or corrected counter never surfaces as negative availability.
func (e *Event) Remaining() int {
	if e.Booked >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Booked
}

// IsFull reports whether no seats remain. Callers use this to route a
// would-be booker to the waitlist instead of the booking flow.
func (e *Event) IsFull() bool {
	return e.Booked >= e.Capacity
}

// Availability is the response DTO for the availability endpoint.
type Availability struct {
	EventID   string `json:"eventId"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	IsFull    bool   `json:"isFull"`
}

// CreateEventRequest is the DTO for creating an event.
type CreateEventRequest struct {
	Name            string  `json:"name" validate:"required,notblank,max=255"`
	Type            string  `json:"type" validate:"required,notblank"`
	Location        string  `json:"location" validate:"required,notblank"`
	Venue           string  `json:"venue" validate:"required,notblank"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"startTime" validate:"required"`
	EndTime         string  `json:"endTime" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	Capacity        *int    `json:"capacity" validate:"required,gte=1"`
	BookingDeadline string  `json:"bookingDeadline" validate:"omitempty,datetime=2006-01-02"`
	Description     string  `json:"description" validate:"required,notblank"`
	Instructor      string  `json:"instructor"`
	Difficulty      string  `json:"difficulty"`
	Status          string  `json:"status" validate:"omitempty,oneof=active draft cancelled completed"`
	Featured        bool    `json:"featured"`
}

// UpdateEventRequest is the DTO for replacing an event's fields (PUT semantics).
type UpdateEventRequest = CreateEventRequest

// EventFilter narrows the event listing.
type EventFilter struct {
	Type       string
	Difficulty string
	Status     string
	Featured   bool
	Search     string
}

// AdjustBookedRequest is the DTO for the staff capacity correction endpoint.
// The increment is signed; the resulting count is floored at zero.
type AdjustBookedRequest struct {
	Increment *int `json:"increment" validate:"required"`
}
