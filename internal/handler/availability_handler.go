package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/pricing"
)

// AvailabilityServiceInterface defines the interface for slot queries.
type AvailabilityServiceInterface interface {
	ListAvailable(ctx context.Context, stylistID, date string) ([]model.TimeSlot, error)
}

// AvailabilityHandler handles HTTP requests for time slot availability.
type AvailabilityHandler struct {
	service AvailabilityServiceInterface
}

// NewAvailabilityHandler creates a new AvailabilityHandler with the given service.
func NewAvailabilityHandler(svc AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// ListSlots handles GET /api/timeslots/stylist/:stylistId?date=YYYY-MM-DD.
// Returns only slots that are still available, ordered by start time.
func (h *AvailabilityHandler) ListSlots(c *fiber.Ctx) error {
	stylistID := c.Params("stylistId")
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: date is required",
		})
	}
	if _, err := time.Parse(pricing.DateLayout, date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: date must be a YYYY-MM-DD date",
		})
	}

	slots, err := h.service.ListAvailable(c.Context(), stylistID, date)
	if err != nil {
		log.Error().Err(err).Str("stylist_id", stylistID).Str("date", date).Msg("failed to list time slots")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(slots)
}
