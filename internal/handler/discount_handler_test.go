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

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
)

// mockDiscountService is a mock implementation of DiscountServiceInterface.
type mockDiscountService struct {
	resolveForSubtotalFn func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error)
}

func (m *mockDiscountService) ResolveForSubtotal(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
	if m.resolveForSubtotalFn != nil {
		return m.resolveForSubtotalFn(ctx, code, subtotal)
	}
	return nil, nil
}

func setupDiscountApp(mockSvc *mockDiscountService) *fiber.App {
	app := fiber.New()
	h := NewDiscountHandler(mockSvc)
	app.Get("/api/discount/:code", h.GetDiscount)
	return app
}

func TestGetDiscount_Success(t *testing.T) {
	var capturedCode string
	var capturedSubtotal int
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			capturedCode = code
			capturedSubtotal = subtotal
			return &model.DiscountResponse{
				Code:           "WELCOME20",
				DiscountType:   model.DiscountPercentage,
				DiscountValue:  20,
				MinAmount:      15000,
				DiscountAmount: 15000,
			}, nil
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/WELCOME20?subtotal=75000", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "WELCOME20", capturedCode)
	assert.Equal(t, 75000, capturedSubtotal)

	var result model.DiscountResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, model.DiscountPercentage, result.DiscountType)
	assert.Equal(t, 20, result.DiscountValue)
	assert.Equal(t, 15000, result.DiscountAmount)
}

func TestGetDiscount_NoSubtotal(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			assert.Equal(t, 0, subtotal, "missing subtotal defaults to 0")
			return &model.DiscountResponse{Code: "FIRST50", DiscountType: model.DiscountFixed, DiscountValue: 5000}, nil
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/FIRST50", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetDiscount_NegativeSubtotal(t *testing.T) {
	mockSvc := &mockDiscountService{}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/WELCOME20?subtotal=-100", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetDiscount_NotFound(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return nil, service.ErrDiscountNotFound
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/NONEXISTENT", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var result map[string]string
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, "discount code not found", result["error"])
}

func TestGetDiscount_Expired(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return nil, service.ErrDiscountExpired
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/OLD10", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, "discount code has expired", result["error"])
}

func TestGetDiscount_UsageLimitReached(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return nil, service.ErrDiscountUsageLimit
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/FIRST50", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, "discount code usage limit reached", result["error"])
}

func TestGetDiscount_Inactive(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return nil, service.ErrDiscountInactive
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/PAUSED15", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]string
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, "discount code is inactive", result["error"])
}

func TestGetDiscount_InternalServerError(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return nil, errors.New("database connection failed")
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/WELCOME20", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestGetDiscount_JSONSnakeCase(t *testing.T) {
	mockSvc := &mockDiscountService{
		resolveForSubtotalFn: func(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
			return &model.DiscountResponse{
				Code:           "WELCOME20",
				DiscountType:   model.DiscountPercentage,
				DiscountValue:  20,
				MinAmount:      15000,
				DiscountAmount: 3000,
			}, nil
		},
	}
	app := setupDiscountApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/discount/WELCOME20?subtotal=15000", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rawJSON map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&rawJSON)
	require.NoError(t, err)

	for _, field := range []string{"code", "discount_type", "discount_value", "min_amount", "discount_amount"} {
		_, ok := rawJSON[field]
		assert.True(t, ok, "response should have %q field", field)
	}
	_, hasCamel := rawJSON["discountAmount"]
	assert.False(t, hasCamel, "response should not have camelCase fields")
}
