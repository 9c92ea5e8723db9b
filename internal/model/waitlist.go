package model

import "time"

// WaitlistEntry records a guest's interest in a full event. Entries are
// append-only; promotion to a booking is a manual staff action.
type WaitlistEntry struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	EventName string    `json:"eventName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// JoinWaitlistRequest is the DTO for joining an event's waitlist.
type JoinWaitlistRequest struct {
	EventID  string `json:"eventId" validate:"required,notblank"`
	FullName string `json:"fullName" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,notblank,max=32"`
	Address  string `json:"address"`
}
