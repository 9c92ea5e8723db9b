package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/internal/service"
)

const promoColumns = `id, code, discount_percent, max_uses, current_uses,
	minimum_amount, expiry_date, description, is_active, created_at`

// PromoRepository provides data access for promo codes using pgx.
type PromoRepository struct {
	pool PoolInterface
}

// NewPromoRepository creates a new PromoRepository with the given pool.
func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

// NewPromoRepositoryWithPool creates a new PromoRepository with a custom pool
// interface. This is primarily used for testing.
func NewPromoRepositoryWithPool(pool PoolInterface) *PromoRepository {
	return &PromoRepository{pool: pool}
}

func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var p model.PromoCode
	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountPercent, &p.MaxUses, &p.CurrentUses,
		&p.MinimumAmount, &p.ExpiryDate, &p.Description, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert inserts a new promo code.
// Returns service.ErrPromoExists if the code is already taken.
func (r *PromoRepository) Insert(ctx context.Context, p *model.PromoCode) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO promo_codes (id, code, discount_percent, max_uses, current_uses,
			minimum_amount, expiry_date, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Code, p.DiscountPercent, p.MaxUses, p.CurrentUses,
		p.MinimumAmount, p.ExpiryDate, p.Description, p.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrPromoExists
		}
		return fmt.Errorf("insert promo code: %w", err)
	}
	return nil
}

// List retrieves all promo codes, newest first.
func (r *PromoRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	promos := []model.PromoCode{}
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promo codes rows: %w", err)
	}
	return promos, nil
}

// GetByCode retrieves a promo code by its (upper-cased) code.
// Returns nil, nil if the code is not found (service layer handles this).
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+promoColumns+` FROM promo_codes WHERE code = $1`, code)
	p, err := scanPromo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get promo code %s: %w", code, err)
	}
	return p, nil
}

// Update replaces a promo code's fields and returns the stored row, so
// callers see the live current_uses and created_at rather than an echo of
// the input. current_uses is deliberately not in the SET list.
// Returns service.ErrPromoNotFound if the promo doesn't exist and
// service.ErrPromoExists if the new code collides with another promo.
func (r *PromoRepository) Update(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE promo_codes SET code = $2, discount_percent = $3, max_uses = $4,
			minimum_amount = $5, expiry_date = $6, description = $7, is_active = $8
		WHERE id = $1
		RETURNING `+promoColumns,
		p.ID, p.Code, p.DiscountPercent, p.MaxUses,
		p.MinimumAmount, p.ExpiryDate, p.Description, p.IsActive)
	updated, err := scanPromo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrPromoNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, service.ErrPromoExists
		}
		return nil, fmt.Errorf("update promo code %s: %w", p.ID, err)
	}
	return updated, nil
}

// Delete removes a promo code.
// Returns service.ErrPromoNotFound if the promo doesn't exist.
func (r *PromoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promo code %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPromoNotFound
	}
	return nil
}

// IncrementUses counts one redemption with a single conditional update so
// concurrent redemptions can never push current_uses past max_uses.
// Returns service.ErrPromoUsageLimit when the condition rejects the row;
// the service distinguishes that from an unknown code.
func (r *PromoRepository) IncrementUses(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE promo_codes SET current_uses = current_uses + 1
		WHERE code = $1 AND is_active = TRUE AND current_uses < max_uses`, code)
	if err != nil {
		return fmt.Errorf("increment uses for promo %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPromoUsageLimit
	}
	return nil
}
