package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-api/internal/model"
	"github.com/eventify/eventify-api/internal/service"
	"github.com/eventify/eventify-api/internal/validator"
)

// mockPromoService is a mock implementation of PromoServiceInterface.
type mockPromoService struct {
	createFn   func(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error)
	listFn     func(ctx context.Context) ([]model.PromoCode, error)
	updateFn   func(ctx context.Context, id string, req *model.UpdatePromoRequest) (*model.PromoCode, error)
	deleteFn   func(ctx context.Context, id string) error
	validateFn func(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error)
	redeemFn   func(ctx context.Context, code string) error
}

func (m *mockPromoService) Create(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.PromoCode{}, nil
}

func (m *mockPromoService) List(ctx context.Context) ([]model.PromoCode, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.PromoCode{}, nil
}

func (m *mockPromoService) Update(ctx context.Context, id string, req *model.UpdatePromoRequest) (*model.PromoCode, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return &model.PromoCode{}, nil
}

func (m *mockPromoService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPromoService) Validate(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, code, amount)
	}
	return &model.PromoValidationResult{}, nil
}

func (m *mockPromoService) Redeem(ctx context.Context, code string) error {
	if m.redeemFn != nil {
		return m.redeemFn(ctx, code)
	}
	return nil
}

func setupPromoApp(mockSvc *mockPromoService) *fiber.App {
	app := fiber.New()
	h := NewPromoHandler(mockSvc, validator.New())
	app.Get("/api/promos", h.ListPromos)
	app.Post("/api/promos", h.CreatePromo)
	app.Put("/api/promos/:id", h.UpdatePromo)
	app.Delete("/api/promos/:id", h.DeletePromo)
	app.Post("/api/promos/validate", h.ValidatePromo)
	app.Post("/api/promos/redeem", h.RedeemPromo)
	return app
}

func TestCreatePromo_RequiresAdmin(t *testing.T) {
	app := setupPromoApp(&mockPromoService{})

	body := `{"code": "SAVE10", "discountPercent": 10, "maxUses": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/promos", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreatePromo_Success(t *testing.T) {
	var captured *model.CreatePromoRequest
	mockSvc := &mockPromoService{
		createFn: func(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
			captured = req
			return &model.PromoCode{ID: "promo-1", Code: "SAVE10"}, nil
		},
	}
	app := setupPromoApp(mockSvc)

	body := `{"code": "SAVE10", "discountPercent": 10, "maxUses": 5, "minimumAmount": 20}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/promos", bytes.NewBufferString(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, captured)
	assert.Equal(t, "SAVE10", captured.Code)
}

func TestCreatePromo_DiscountOutOfRange(t *testing.T) {
	app := setupPromoApp(&mockPromoService{})

	body := `{"code": "SAVE200", "discountPercent": 200, "maxUses": 5}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/promos", bytes.NewBufferString(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreatePromo_InvalidCodeCharacters(t *testing.T) {
	app := setupPromoApp(&mockPromoService{})

	body := `{"code": "SAVE 10%", "discountPercent": 10, "maxUses": 5}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/promos", bytes.NewBufferString(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: code may only contain letters, digits, hyphens and underscores", result["error"])
}

func TestCreatePromo_Duplicate(t *testing.T) {
	mockSvc := &mockPromoService{
		createFn: func(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
			return nil, service.ErrPromoExists
		},
	}
	app := setupPromoApp(mockSvc)

	body := `{"code": "SAVE10", "discountPercent": 10, "maxUses": 5}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/promos", bytes.NewBufferString(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestValidatePromo_Public(t *testing.T) {
	// Validation runs at checkout before any identity exists.
	mockSvc := &mockPromoService{
		validateFn: func(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error) {
			return &model.PromoValidationResult{
				Valid:           true,
				DiscountPercent: 10,
				DiscountAmount:  10,
				FinalAmount:     90,
			}, nil
		},
	}
	app := setupPromoApp(mockSvc)

	body := `{"code": "SAVE10", "amount": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/promos/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result model.PromoValidationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Equal(t, 90.0, result.FinalAmount)
}

func TestValidatePromo_MissingAmount(t *testing.T) {
	app := setupPromoApp(&mockPromoService{})

	body := `{"code": "SAVE10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/promos/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: amount is required", result["error"])
}

func TestValidatePromo_RejectionMessages(t *testing.T) {
	for name, tc := range map[string]struct {
		svcErr  error
		status  int
		message string
	}{
		"not found":     {service.ErrPromoNotFound, fiber.StatusNotFound, "promo code not found"},
		"inactive":      {service.ErrPromoInactive, fiber.StatusBadRequest, "promo code is inactive"},
		"usage limit":   {service.ErrPromoUsageLimit, fiber.StatusBadRequest, "promo code usage limit reached"},
		"expired":       {service.ErrPromoExpired, fiber.StatusBadRequest, "promo code has expired"},
		"below minimum": {service.ErrPromoBelowMinimum, fiber.StatusBadRequest, "amount is below the promo code minimum"},
	} {
		mockSvc := &mockPromoService{
			validateFn: func(ctx context.Context, code string, amount float64) (*model.PromoValidationResult, error) {
				return nil, tc.svcErr
			},
		}
		app := setupPromoApp(mockSvc)

		body := `{"code": "SAVE10", "amount": 100}`
		req := httptest.NewRequest(http.MethodPost, "/api/promos/validate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, tc.status, resp.StatusCode, name)

		var result map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), name)
		assert.Equal(t, tc.message, result["error"], name)
	}
}

func TestRedeemPromo_Success(t *testing.T) {
	var capturedCode string
	mockSvc := &mockPromoService{
		redeemFn: func(ctx context.Context, code string) error {
			capturedCode = code
			return nil
		},
	}
	app := setupPromoApp(mockSvc)

	body := `{"code": "SAVE10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/promos/redeem", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "SAVE10", capturedCode)

	respBody, _ := io.ReadAll(resp.Body)
	assert.Empty(t, respBody, "Response body should be empty on success")
}

func TestRedeemPromo_UsageLimit(t *testing.T) {
	mockSvc := &mockPromoService{
		redeemFn: func(ctx context.Context, code string) error {
			return service.ErrPromoUsageLimit
		},
	}
	app := setupPromoApp(mockSvc)

	body := `{"code": "SAVE10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/promos/redeem", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestDeletePromo_NotFound(t *testing.T) {
	mockSvc := &mockPromoService{
		deleteFn: func(ctx context.Context, id string) error {
			return service.ErrPromoNotFound
		},
	}
	app := setupPromoApp(mockSvc)

	req := asAdmin(httptest.NewRequest(http.MethodDelete, "/api/promos/missing", nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
