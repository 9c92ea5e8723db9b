package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventify/eventify-api/internal/model"
)

// UserRepository provides data access for user accounts using pgx.
// Credentials live with the upstream auth service; this table only backs
// role scoping and the dashboard's user count.
type UserRepository struct {
	pool PoolInterface
}

// NewUserRepository creates a new UserRepository with the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// NewUserRepositoryWithPool creates a new UserRepository with a custom pool
// interface. This is primarily used for testing.
func NewUserRepositoryWithPool(pool PoolInterface) *UserRepository {
	return &UserRepository{pool: pool}
}

// CountByRole counts accounts with the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}
	return count, nil
}

// EnsureAdmin provisions the staff account at startup if it doesn't exist.
// Idempotent: a concurrent or repeated startup is a no-op.
func (r *UserRepository) EnsureAdmin(ctx context.Context, email, name string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), email, name, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}
	return nil
}
