package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPinger is a mock implementation of DBPinger.
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func setupHealthApp(p DBPinger) *fiber.App {
	app := fiber.New()
	h := NewHealthHandler(p)
	app.Get("/health", h.Check)
	return app
}

func TestHealthCheck_Healthy(t *testing.T) {
	app := setupHealthApp(&mockPinger{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "healthy", result["status"])
	assert.Equal(t, "up", result["database"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	app := setupHealthApp(&mockPinger{
		pingFn: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "unhealthy", result["status"])
	assert.Equal(t, "down", result["database"])
}
