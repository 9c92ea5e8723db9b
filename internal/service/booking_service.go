package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/pkg/database"
)

// BookingRepositoryInterface defines the interface for booking data access.
type BookingRepositoryInterface interface {
	Insert(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, tx database.TxQuerier, id string, status model.BookingStatus, adminNotes string, ticketID *string) error
	List(ctx context.Context, f model.BookingFilter) ([]model.Booking, error)
}

// CapacityLedgerInterface is the slice of event data access the booking
// state machine needs: resolving the event on create and reserving a seat
// on approval.
type CapacityLedgerInterface interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	IncrementBooked(ctx context.Context, tx database.TxQuerier, id string) error
}

// Notifier sends the guest a booking-received notification. Failure must
// never fail the booking.
type Notifier interface {
	BookingReceived(ctx context.Context, n model.BookingNotification) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BookingService governs the booking lifecycle: creation in pending, the
// single staff transition to approved or rejected, and role-scoped listing.
type BookingService struct {
	pool     TxBeginner
	bookings BookingRepositoryInterface
	events   CapacityLedgerInterface
	notifier Notifier
}

// NewBookingService creates a new BookingService with the given pool and
// dependencies. The notifier may be nil, which disables notifications.
func NewBookingService(pool *pgxpool.Pool, bookings BookingRepositoryInterface, events CapacityLedgerInterface, notifier Notifier) *BookingService {
	return &BookingService{pool: pool, bookings: bookings, events: events, notifier: notifier}
}

// NewBookingServiceWithTxBeginner creates a BookingService with a custom
// TxBeginner. Primarily used for testing.
func NewBookingServiceWithTxBeginner(pool TxBeginner, bookings BookingRepositoryInterface, events CapacityLedgerInterface, notifier Notifier) *BookingService {
	return &BookingService{pool: pool, bookings: bookings, events: events, notifier: notifier}
}

// Create records a new booking in pending state. The event must resolve,
// but capacity, status and deadline are deliberately not checked here:
// capacity steering happens in the caller via the availability endpoint.
// Returns:
//   - ErrInvalidRequest if required guest fields are missing
//   - ErrEventNotFound if the event doesn't resolve
func (s *BookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	// Defense-in-depth: handlers validate, but the service is the last gate
	// before a write.
	if req == nil || strings.TrimSpace(req.EventID) == "" ||
		strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" {
		return nil, ErrInvalidRequest
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	booking := &model.Booking{
		ID:                uuid.NewString(),
		EventID:           event.ID,
		EventName:         event.Name,
		FullName:          strings.TrimSpace(req.FullName),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             strings.TrimSpace(req.Phone),
		Address:           req.Address,
		PaidAmount:        req.PaidAmount,
		TransactionID:     req.TransactionID,
		PaymentScreenshot: req.PaymentScreenshot,
		Status:            model.BookingPending,
		BookingDate:       time.Now().Format("2006-01-02"),
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	// Fire-and-forget: the booking is committed, notification latency or
	// failure must not reach the caller.
	if s.notifier != nil {
		n := model.BookingNotification{
			BookingID:     booking.ID,
			EventID:       booking.EventID,
			EventName:     booking.EventName,
			FullName:      booking.FullName,
			Email:         booking.Email,
			BookingDate:   booking.BookingDate,
			PaidAmount:    booking.PaidAmount,
			TransactionID: booking.TransactionID,
		}
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.notifier.BookingReceived(nctx, n); err != nil {
				log.Warn().Err(err).Str("booking_id", n.BookingID).Msg("guest notification failed")
			}
		}()
	}

	return booking, nil
}

// Get retrieves a single booking visible to the caller. Staff can read any
// booking; a guest only their own. A booking belonging to someone else
// reads as ErrBookingNotFound so the id reveals nothing about other
// guests' bookings.
// Returns ErrIdentityRequired if a non-staff caller has no identity and
// ErrBookingNotFound if the booking doesn't exist.
func (s *BookingService) Get(ctx context.Context, identity model.Identity, id string) (*model.Booking, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if !identity.IsAdmin() && email == "" {
		return nil, ErrIdentityRequired
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !identity.IsAdmin() && booking.Email != email {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// List returns bookings visible to the caller. Staff see everything,
// optionally narrowed by status and a case-insensitive search across guest
// name, email and event name; everyone else sees only their own bookings.
// A non-staff caller without an identity gets ErrIdentityRequired: an
// empty email must never widen the scope to every guest's bookings.
func (s *BookingService) List(ctx context.Context, identity model.Identity, status, search string) ([]model.Booking, error) {
	f := model.BookingFilter{Status: status, Search: search}
	if !identity.IsAdmin() {
		email := strings.ToLower(strings.TrimSpace(identity.Email))
		if email == "" {
			return nil, ErrIdentityRequired
		}
		f.Email = email
	}
	return s.bookings.List(ctx, f)
}

// UpdateStatus drives the booking state machine. The whole transition runs
// in one transaction: the booking row is locked, the transition is checked
// against the closed state set, and on approval the event's booked counter
// is reserved with an atomic conditional increment. A failed increment
// rolls the status change back, so approval is all-or-nothing.
//
// Approving assigns the staff-supplied ticket id, or generates one when
// none is given, so an approved booking always carries a ticket.
// Returns:
//   - ErrBookingNotFound if the booking doesn't exist
//   - ErrBookingFinalized if the booking is already approved or rejected
//   - ErrInvalidTransition for transitions the state machine doesn't define
//   - ErrEventFull if approval would exceed the event's capacity
func (s *BookingService) UpdateStatus(ctx context.Context, id string, req *model.UpdateBookingStatusRequest) (*model.Booking, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	next := model.BookingStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidRequest
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	booking, err := s.bookings.GetForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking for update: %w", err)
	}

	if !booking.Status.CanTransitionTo(next) {
		if booking.Status.IsTerminal() {
			return nil, ErrBookingFinalized
		}
		return nil, ErrInvalidTransition
	}

	notes := booking.AdminNotes
	if req.AdminNotes != nil {
		notes = *req.AdminNotes
	}

	var ticketID *string
	if next == model.BookingApproved {
		t := strings.TrimSpace(req.TicketID)
		if t == "" {
			t = "TKT-" + uuid.NewString()
		}
		ticketID = &t
	}

	if err := s.bookings.UpdateStatus(ctx, tx, id, next, notes, ticketID); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if next == model.BookingApproved {
		if err := s.events.IncrementBooked(ctx, tx, booking.EventID); err != nil {
			if errors.Is(err, ErrEventFull) {
				return nil, ErrEventFull
			}
			return nil, fmt.Errorf("increment booked: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	booking.Status = next
	booking.AdminNotes = notes
	booking.TicketID = ticketID
	return booking, nil
}
