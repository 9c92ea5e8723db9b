package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-api/internal/model"
)

// mockPromoRepository is a mock implementation of PromoRepositoryInterface.
type mockPromoRepository struct {
	insertFn        func(ctx context.Context, p *model.PromoCode) error
	listFn          func(ctx context.Context) ([]model.PromoCode, error)
	getByCodeFn     func(ctx context.Context, code string) (*model.PromoCode, error)
	updateFn        func(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error)
	deleteFn        func(ctx context.Context, id string) error
	incrementUsesFn func(ctx context.Context, code string) error
}

func (m *mockPromoRepository) Insert(ctx context.Context, p *model.PromoCode) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockPromoRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.PromoCode{}, nil
}

func (m *mockPromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockPromoRepository) Update(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return p, nil
}

func (m *mockPromoRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPromoRepository) IncrementUses(ctx context.Context, code string) error {
	if m.incrementUsesFn != nil {
		return m.incrementUsesFn(ctx, code)
	}
	return nil
}

func intPtr(i int) *int {
	return &i
}

// save10 is the reference promo used across validation tests.
func save10() *model.PromoCode {
	return &model.PromoCode{
		ID:              "promo-1",
		Code:            "SAVE10",
		DiscountPercent: 10,
		MaxUses:         5,
		CurrentUses:     2,
		MinimumAmount:   20,
		ExpiryDate:      "2099-01-01",
		IsActive:        true,
	}
}

func TestPromoService_Create_NormalizesCode(t *testing.T) {
	var captured *model.PromoCode
	repo := &mockPromoRepository{
		insertFn: func(ctx context.Context, p *model.PromoCode) error {
			captured = p
			return nil
		},
	}

	svc := NewPromoService(repo)
	promo, err := svc.Create(context.Background(), &model.CreatePromoRequest{
		Code:            "  save10 ",
		DiscountPercent: intPtr(10),
		MaxUses:         intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", promo.Code, "code should be trimmed and upper-cased")
	assert.Equal(t, "SAVE10", captured.Code)
	assert.True(t, promo.IsActive, "promos default to active")
	assert.NotEmpty(t, promo.ID)
}

func TestPromoService_Create_Duplicate(t *testing.T) {
	repo := &mockPromoRepository{
		insertFn: func(ctx context.Context, p *model.PromoCode) error {
			return ErrPromoExists
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Create(context.Background(), &model.CreatePromoRequest{
		Code:            "SAVE10",
		DiscountPercent: intPtr(10),
		MaxUses:         intPtr(5),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoExists))
}

func TestPromoService_Create_NilFields(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{})

	_, err := svc.Create(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = svc.Create(context.Background(), &model.CreatePromoRequest{Code: "X", MaxUses: intPtr(5)})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestPromoService_Validate_Success(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			assert.Equal(t, "SAVE10", code, "lookup should use the normalized code")
			return save10(), nil
		},
	}

	svc := NewPromoService(repo)
	result, err := svc.Validate(context.Background(), "save10", 100)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 10, result.DiscountPercent)
	assert.Equal(t, 10.00, result.DiscountAmount)
	assert.Equal(t, 90.00, result.FinalAmount)
}

func TestPromoService_Validate_Rounding(t *testing.T) {
	promo := save10()
	promo.DiscountPercent = 15
	promo.MinimumAmount = 0
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promo, nil
		},
	}

	svc := NewPromoService(repo)
	result, err := svc.Validate(context.Background(), "SAVE10", 33.33)

	require.NoError(t, err)
	// 33.33 * 0.15 = 4.9995, rounds to 5.00
	assert.Equal(t, 5.00, result.DiscountAmount)
	assert.Equal(t, 28.33, result.FinalAmount)
}

func TestPromoService_Validate_NotFound(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return nil, nil
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Validate(context.Background(), "NOPE", 100)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoNotFound))
}

func TestPromoService_Validate_Inactive(t *testing.T) {
	promo := save10()
	promo.IsActive = false
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promo, nil
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoInactive))
}

func TestPromoService_Validate_UsageLimitReached(t *testing.T) {
	// Usage limit trumps every later guard regardless of other fields.
	promo := save10()
	promo.CurrentUses = promo.MaxUses
	promo.ExpiryDate = "2000-01-01"
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promo, nil
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoUsageLimit))
}

func TestPromoService_Validate_Expired(t *testing.T) {
	promo := save10()
	promo.ExpiryDate = "2024-06-01"
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promo, nil
		},
	}

	now := time.Date(2024, 6, 2, 9, 0, 0, 0, time.Local)
	svc := NewPromoServiceWithClock(repo, func() time.Time { return now })
	_, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoExpired))
}

func TestPromoService_Validate_ExpiresTodayStillValid(t *testing.T) {
	// Expiry is compared at date precision: a code expiring today passes.
	promo := save10()
	promo.ExpiryDate = "2024-06-01"
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return promo, nil
		},
	}

	now := time.Date(2024, 6, 1, 23, 59, 0, 0, time.Local)
	svc := NewPromoServiceWithClock(repo, func() time.Time { return now })
	result, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestPromoService_Validate_BelowMinimum(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return save10(), nil
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Validate(context.Background(), "SAVE10", 10)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoBelowMinimum), "should be the specific below-minimum reason")
}

func TestPromoService_Validate_NonPositiveAmount(t *testing.T) {
	svc := NewPromoService(&mockPromoRepository{})
	_, err := svc.Validate(context.Background(), "SAVE10", 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestPromoService_Validate_DoesNotIncrementUses(t *testing.T) {
	incremented := false
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return save10(), nil
		},
		incrementUsesFn: func(ctx context.Context, code string) error {
			incremented = true
			return nil
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.NoError(t, err)
	assert.False(t, incremented, "validation must be read-only; redemption is a separate operation")
}

func TestPromoService_Redeem_Success(t *testing.T) {
	var capturedCode string
	repo := &mockPromoRepository{
		incrementUsesFn: func(ctx context.Context, code string) error {
			capturedCode = code
			return nil
		},
	}

	svc := NewPromoService(repo)
	err := svc.Redeem(context.Background(), "save10")

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", capturedCode)
}

func TestPromoService_Redeem_UsageLimit(t *testing.T) {
	repo := &mockPromoRepository{
		incrementUsesFn: func(ctx context.Context, code string) error {
			return ErrPromoUsageLimit
		},
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			p := save10()
			p.CurrentUses = p.MaxUses
			return p, nil
		},
	}

	svc := NewPromoService(repo)
	err := svc.Redeem(context.Background(), "SAVE10")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoUsageLimit))
}

func TestPromoService_Redeem_NotFound(t *testing.T) {
	// The conditional update rejects unknown codes the same way as
	// exhausted ones; Redeem must tell them apart.
	repo := &mockPromoRepository{
		incrementUsesFn: func(ctx context.Context, code string) error {
			return ErrPromoUsageLimit
		},
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return nil, nil
		},
	}

	svc := NewPromoService(repo)
	err := svc.Redeem(context.Background(), "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoNotFound))
}

func TestPromoService_Update_ReturnsStoredRow(t *testing.T) {
	created := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	repo := &mockPromoRepository{
		updateFn: func(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error) {
			stored := *p
			stored.CurrentUses = 3
			stored.CreatedAt = created
			return &stored, nil
		},
	}

	svc := NewPromoService(repo)
	promo, err := svc.Update(context.Background(), "promo-1", &model.UpdatePromoRequest{
		Code:            "SAVE10",
		DiscountPercent: intPtr(15),
		MaxUses:         intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, promo.CurrentUses, "response must carry the stored usage count, not the request's zero value")
	assert.Equal(t, created, promo.CreatedAt)
	assert.Equal(t, 15, promo.DiscountPercent)
}

func TestPromoService_Update_NotFound(t *testing.T) {
	repo := &mockPromoRepository{
		updateFn: func(ctx context.Context, p *model.PromoCode) (*model.PromoCode, error) {
			return nil, ErrPromoNotFound
		},
	}

	svc := NewPromoService(repo)
	_, err := svc.Update(context.Background(), "missing", &model.UpdatePromoRequest{
		Code:            "SAVE10",
		DiscountPercent: intPtr(10),
		MaxUses:         intPtr(5),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPromoNotFound))
}
