package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
)

// DiscountServiceInterface defines the interface for discount resolution.
type DiscountServiceInterface interface {
	ResolveForSubtotal(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error)
}

// DiscountHandler handles HTTP requests for discount code validation.
type DiscountHandler struct {
	service DiscountServiceInterface
}

// NewDiscountHandler creates a new DiscountHandler with the given service.
func NewDiscountHandler(svc DiscountServiceInterface) *DiscountHandler {
	return &DiscountHandler{service: svc}
}

// GetDiscount handles GET /api/discount/:code?subtotal=N. Resolution is a
// preview: it never consumes a usage of the code. Policy rejections carry
// the specific reason so callers can distinguish them from not-found.
func (h *DiscountHandler) GetDiscount(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: code is required",
		})
	}
	subtotal := c.QueryInt("subtotal", 0)
	if subtotal < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: subtotal cannot be negative",
		})
	}

	resp, err := h.service.ResolveForSubtotal(c.Context(), code, subtotal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDiscountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "discount code not found"})
		case errors.Is(err, service.ErrDiscountExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code has expired"})
		case errors.Is(err, service.ErrDiscountUsageLimit):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code usage limit reached"})
		case errors.Is(err, service.ErrDiscountInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code is inactive"})
		}
		log.Error().Err(err).Str("code", code).Msg("failed to resolve discount code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(resp)
}
