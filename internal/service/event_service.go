package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eventify/eventify-api/internal/model"
)

// EventRepositoryInterface defines the interface for event data access.
type EventRepositoryInterface interface {
	Insert(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
	AdjustBooked(ctx context.Context, id string, increment int) (*model.Event, error)
}

// EventService provides business logic for event management and the
// capacity ledger's staff-facing operations.
type EventService struct {
	events EventRepositoryInterface
}

// NewEventService creates a new EventService with the given repository.
func NewEventService(events EventRepositoryInterface) *EventService {
	return &EventService{events: events}
}

func eventFromRequest(id string, req *model.CreateEventRequest) *model.Event {
	status := model.EventStatus(req.Status)
	if status == "" {
		status = model.EventActive
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "All Levels"
	}
	return &model.Event{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		Type:            req.Type,
		Location:        req.Location,
		Venue:           req.Venue,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Price:           req.Price,
		Capacity:        *req.Capacity,
		BookingDeadline: req.BookingDeadline,
		Description:     req.Description,
		Instructor:      req.Instructor,
		Difficulty:      difficulty,
		Status:          status,
		Featured:        req.Featured,
	}
}

// Create creates a new event. Defaults: status active, difficulty
// "All Levels", booked 0.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if req == nil || req.Capacity == nil || *req.Capacity < 1 ||
		strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return nil, ErrInvalidRequest
	}
	event := eventFromRequest(uuid.NewString(), req)
	if err := s.events.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// List returns events matching the filter, sorted by date.
func (s *EventService) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	return s.events.List(ctx, f)
}

// Get retrieves a single event.
// Returns ErrEventNotFound if the event doesn't exist.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Update replaces an event's fields. The booked counter is not writable
// through this path; it moves only via approval and AdjustBooked.
// Returns ErrEventNotFound if the event doesn't exist.
func (s *EventService) Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error) {
	if req == nil || req.Capacity == nil || *req.Capacity < 1 ||
		strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return nil, ErrInvalidRequest
	}
	event := eventFromRequest(id, req)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an event.
// Returns ErrEventNotFound if the event doesn't exist.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// AdjustBooked applies a signed staff correction to the booked counter,
// floored at zero.
// Returns ErrEventNotFound if the event doesn't exist.
func (s *EventService) AdjustBooked(ctx context.Context, id string, increment int) (*model.Event, error) {
	return s.events.AdjustBooked(ctx, id, increment)
}

// Availability reports the capacity ledger for one event. Callers use
// IsFull to route guests between the booking flow and the waitlist.
// Returns ErrEventNotFound if the event doesn't exist.
func (s *EventService) Availability(ctx context.Context, id string) (*model.Availability, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Availability{
		EventID:   event.ID,
		Capacity:  event.Capacity,
		Booked:    event.Booked,
		Remaining: event.Remaining(),
		IsFull:    event.IsFull(),
	}, nil
}
