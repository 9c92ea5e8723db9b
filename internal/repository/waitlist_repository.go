package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventify/eventify-api/internal/model"
)

// WaitlistRepository provides data access for waitlist entries using pgx.
// Entries are append-only.
type WaitlistRepository struct {
	pool PoolInterface
}

// NewWaitlistRepository creates a new WaitlistRepository with the given pool.
func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

// NewWaitlistRepositoryWithPool creates a new WaitlistRepository with a custom
// pool interface. This is primarily used for testing.
func NewWaitlistRepositoryWithPool(pool PoolInterface) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

// Insert appends a waitlist entry.
func (r *WaitlistRepository) Insert(ctx context.Context, e *model.WaitlistEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO waitlist_entries (id, event_id, event_name, full_name, email, phone, address, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.EventID, e.EventName, e.FullName, e.Email, e.Phone, e.Address, e.JoinedAt)
	if err != nil {
		return fmt.Errorf("insert waitlist entry: %w", err)
	}
	return nil
}

// List retrieves all waitlist entries, newest first.
func (r *WaitlistRepository) List(ctx context.Context) ([]model.WaitlistEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, event_name, full_name, email, phone, address, joined_at
		FROM waitlist_entries ORDER BY joined_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list waitlist entries: %w", err)
	}
	defer rows.Close()

	entries := []model.WaitlistEntry{}
	for rows.Next() {
		var e model.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.EventID, &e.EventName, &e.FullName, &e.Email, &e.Phone, &e.Address, &e.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan waitlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waitlist rows: %w", err)
	}
	return entries, nil
}
