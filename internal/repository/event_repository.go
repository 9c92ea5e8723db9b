// Package repository provides PostgreSQL data access for the booking core.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/internal/service"
	"github.com/eventify/eventify-api/pkg/database"
)

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const eventColumns = `id, name, type, location, venue, date, start_time, end_time,
	price, capacity, booked, booking_deadline, description, instructor,
	difficulty, status, featured, created_at, updated_at`

// EventRepository provides data access for events using pgx.
type EventRepository struct {
	pool PoolInterface
}

// NewEventRepository creates a new EventRepository with the given pool.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// NewEventRepositoryWithPool creates a new EventRepository with a custom pool
// interface. This is primarily used for testing.
func NewEventRepositoryWithPool(pool PoolInterface) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Type, &e.Location, &e.Venue, &e.Date,
		&e.StartTime, &e.EndTime, &e.Price, &e.Capacity, &e.Booked,
		&e.BookingDeadline, &e.Description, &e.Instructor, &e.Difficulty,
		&e.Status, &e.Featured, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert inserts a new event.
func (r *EventRepository) Insert(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, name, type, location, venue, date, start_time, end_time,
			price, capacity, booked, booking_deadline, description, instructor,
			difficulty, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		e.ID, e.Name, e.Type, e.Location, e.Venue, e.Date, e.StartTime, e.EndTime,
		e.Price, e.Capacity, e.Booked, e.BookingDeadline, e.Description, e.Instructor,
		e.Difficulty, e.Status, e.Featured)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by id.
// Returns nil, nil if the event is not found (service layer handles this).
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

// List retrieves events matching the filter, sorted by date ascending.
func (r *EventRepository) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Type != "" && f.Type != "all" {
		query += ` AND type = ` + next(f.Type)
	}
	if f.Difficulty != "" && f.Difficulty != "all" {
		query += ` AND difficulty = ` + next(f.Difficulty)
	}
	if f.Status != "" {
		query += ` AND status = ` + next(f.Status)
	}
	if f.Featured {
		query += ` AND featured = TRUE`
	}
	if f.Search != "" {
		p := next("%" + f.Search + "%")
		query += ` AND (name ILIKE ` + p + ` OR location ILIKE ` + p +
			` OR instructor ILIKE ` + p + ` OR description ILIKE ` + p + `)`
	}
	query += ` ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events rows: %w", err)
	}
	return events, nil
}

// Update replaces an event's mutable fields.
// Returns service.ErrEventNotFound if the event doesn't exist.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET name = $2, type = $3, location = $4, venue = $5, date = $6,
			start_time = $7, end_time = $8, price = $9, capacity = $10,
			booking_deadline = $11, description = $12, instructor = $13,
			difficulty = $14, status = $15, featured = $16, updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.Name, e.Type, e.Location, e.Venue, e.Date, e.StartTime, e.EndTime,
		e.Price, e.Capacity, e.BookingDeadline, e.Description, e.Instructor,
		e.Difficulty, e.Status, e.Featured)
	if err != nil {
		return fmt.Errorf("update event %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrEventNotFound
	}
	return nil
}

// Delete removes an event.
// Returns service.ErrEventNotFound if the event doesn't exist.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrEventNotFound
	}
	return nil
}

// AdjustBooked applies a signed staff correction to the booked counter in a
// single statement, floored at zero. There is deliberately no capacity
// ceiling on this path: it is an explicit staff override.
// Returns service.ErrEventNotFound if the event doesn't exist.
func (r *EventRepository) AdjustBooked(ctx context.Context, id string, increment int) (*model.Event, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE events SET booked = GREATEST(0, booked + $2), updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns, id, increment)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrEventNotFound
		}
		return nil, fmt.Errorf("adjust booked for event %s: %w", id, err)
	}
	return e, nil
}

// IncrementBooked reserves one seat with a single conditional update. The
// condition makes the increment atomic under concurrent approvals: no
// read-modify-write round trip, and the counter can never pass capacity.
// Returns service.ErrEventFull when no seat is available (or the event row
// is gone, which the approval transaction treats the same way).
func (r *EventRepository) IncrementBooked(ctx context.Context, tx database.TxQuerier, id string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE events SET booked = booked + 1, updated_at = NOW()
		WHERE id = $1 AND booked < capacity`, id)
	if err != nil {
		return fmt.Errorf("increment booked for event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrEventFull
	}
	return nil
}
