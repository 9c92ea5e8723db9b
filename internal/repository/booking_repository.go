package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/internal/service"
	"github.com/eventify/eventify-api/pkg/database"
)

const bookingColumns = `id, event_id, event_name, full_name, email, phone, address,
	paid_amount, transaction_id, payment_screenshot, status, booking_date,
	admin_notes, ticket_id, created_at`

// BookingRepository provides data access for bookings using pgx.
type BookingRepository struct {
	pool PoolInterface
}

// NewBookingRepository creates a new BookingRepository with the given pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// NewBookingRepositoryWithPool creates a new BookingRepository with a custom
// pool interface. This is primarily used for testing.
func NewBookingRepositoryWithPool(pool PoolInterface) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.EventID, &b.EventName, &b.FullName, &b.Email, &b.Phone,
		&b.Address, &b.PaidAmount, &b.TransactionID, &b.PaymentScreenshot,
		&b.Status, &b.BookingDate, &b.AdminNotes, &b.TicketID, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert inserts a new booking.
func (r *BookingRepository) Insert(ctx context.Context, b *model.Booking) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bookings (id, event_id, event_name, full_name, email, phone, address,
			paid_amount, transaction_id, payment_screenshot, status, booking_date, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.EventID, b.EventName, b.FullName, b.Email, b.Phone, b.Address,
		b.PaidAmount, b.TransactionID, b.PaymentScreenshot, b.Status, b.BookingDate, b.AdminNotes)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by id.
// Returns nil, nil if the booking is not found (service layer handles this).
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

// GetForUpdate retrieves a booking with a row lock (SELECT FOR UPDATE) so a
// concurrent status update on the same booking blocks until the transaction
// completes.
// Returns service.ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.Booking, error) {
	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking for update %s: %w", id, err)
	}
	return b, nil
}

// UpdateStatus writes the outcome of a state-machine transition. Must be
// called within a transaction after locking the row.
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx database.TxQuerier, id string, status model.BookingStatus, adminNotes string, ticketID *string) error {
	_, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2, admin_notes = $3, ticket_id = $4 WHERE id = $1`,
		id, status, adminNotes, ticketID)
	if err != nil {
		return fmt.Errorf("update booking status %s: %w", id, err)
	}
	return nil
}

// List retrieves bookings matching the filter, newest first.
func (r *BookingRepository) List(ctx context.Context, f model.BookingFilter) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Email != "" {
		query += ` AND email = ` + next(f.Email)
	}
	if f.Status != "" && f.Status != "all" {
		query += ` AND status = ` + next(f.Status)
	}
	if f.Search != "" {
		p := next("%" + f.Search + "%")
		query += ` AND (full_name ILIKE ` + p + ` OR email ILIKE ` + p + ` OR event_name ILIKE ` + p + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings rows: %w", err)
	}
	return bookings, nil
}
