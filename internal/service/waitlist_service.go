package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventify/eventify-api/internal/model"
)

// WaitlistRepositoryInterface defines the interface for waitlist data access.
type WaitlistRepositoryInterface interface {
	Insert(ctx context.Context, e *model.WaitlistEntry) error
	List(ctx context.Context) ([]model.WaitlistEntry, error)
}

// EventResolver resolves an event reference when joining the waitlist.
type EventResolver interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// WaitlistService records guest interest in full events. Entries are
// append-only; nothing here promotes an entry into a booking.
type WaitlistService struct {
	waitlist WaitlistRepositoryInterface
	events   EventResolver
}

// NewWaitlistService creates a new WaitlistService with its dependencies.
func NewWaitlistService(waitlist WaitlistRepositoryInterface, events EventResolver) *WaitlistService {
	return &WaitlistService{waitlist: waitlist, events: events}
}

// Join appends a waitlist entry for the guest.
// Returns:
//   - ErrInvalidRequest if required guest fields are missing
//   - ErrEventNotFound if the event doesn't resolve
func (s *WaitlistService) Join(ctx context.Context, req *model.JoinWaitlistRequest) (*model.WaitlistEntry, error) {
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

	entry := &model.WaitlistEntry{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		EventName: event.Name,
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   req.Address,
		JoinedAt:  time.Now(),
	}
	if err := s.waitlist.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert waitlist entry: %w", err)
	}
	return entry, nil
}

// List returns all waitlist entries, newest first.
func (s *WaitlistService) List(ctx context.Context) ([]model.WaitlistEntry, error) {
	return s.waitlist.List(ctx)
}
