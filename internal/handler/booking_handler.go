package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
)

// BookingServiceInterface defines the interface for booking business logic.
type BookingServiceInterface interface {
	Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error)
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status, paymentStatus string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	RefundPreview(ctx context.Context, id string) (*model.RefundPreview, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service   BookingServiceInterface
	validator *validator.Validate
}

// NewBookingHandler creates a new BookingHandler with the given service and validator.
func NewBookingHandler(svc BookingServiceInterface, v *validator.Validate) *BookingHandler {
	return &BookingHandler{service: svc, validator: v}
}

// discountError maps discount resolution failures shared by quote and create.
// Returns false when err is not a discount rejection.
func discountError(c *fiber.Ctx, err error) (error, bool) {
	switch {
	case errors.Is(err, service.ErrDiscountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "discount code not found"}), true
	case errors.Is(err, service.ErrDiscountExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code has expired"}), true
	case errors.Is(err, service.ErrDiscountUsageLimit):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code usage limit reached"}), true
	case errors.Is(err, service.ErrDiscountInactive):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "discount code is inactive"}), true
	}
	return nil, false
}

// Quote handles POST /api/bookings/quote. Pure computation over the catalog;
// callable repeatedly as the client's selection changes.
func (h *BookingHandler) Quote(c *fiber.Ctx) error {
	var req model.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	quote, err := h.service.Quote(c.Context(), &req)
	if err != nil {
		if resp, ok := discountError(c, err); ok {
			return resp
		}
		if errors.Is(err, service.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		}
		if errors.Is(err, service.ErrIncompleteBooking) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one service is required"})
		}
		log.Error().Err(err).Str("stylist_id", req.StylistID).Msg("failed to compute quote")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(quote)
}

// CreateBooking handles POST /api/bookings. The referenced time slot is
// claimed atomically with the insert; a slot raced away by another booker
// comes back as a conflict.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req model.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	booking, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if resp, ok := discountError(c, err); ok {
			return resp
		}
		switch {
		case errors.Is(err, service.ErrIncompleteBooking):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "booking requires at least one service and a time slot"})
		case errors.Is(err, service.ErrServiceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "service not found"})
		case errors.Is(err, service.ErrSlotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "time slot not found"})
		case errors.Is(err, service.ErrSlotMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "time slot does not belong to stylist"})
		case errors.Is(err, service.ErrSlotUnavailable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "time slot is no longer available"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("user_id", req.UserID).
			Str("stylist_id", req.StylistID).
			Msg("failed to create booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("booking_id", booking.ID).
		Str("user_id", booking.UserID).
		Int("total_amount", booking.TotalAmount).
		Msg("booking created")

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	booking, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		}
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(booking)
}

// ListUserBookings handles GET /api/bookings/user/:userId.
func (h *BookingHandler) ListUserBookings(c *fiber.Ctx) error {
	userID := c.Params("userId")

	bookings, err := h.service.ListByUser(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list bookings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(bookings)
}

// UpdateStatus handles PATCH /api/bookings/:id/status. Transitions outside
// the lifecycle state machine are rejected as conflicts.
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	booking, err := h.service.UpdateStatus(c.Context(), id, req.Status, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status value"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "invalid status transition"})
		case errors.Is(err, service.ErrDiscountUsageLimit):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "discount code usage limit reached"})
		}
		log.Error().Err(err).Str("booking_id", id).Str("status", req.Status).Msg("failed to update booking status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Str("payment_status", string(booking.PaymentStatus)).
		Msg("booking status updated")

	return c.JSON(booking)
}

// CancelBooking handles POST /api/bookings/:id/cancel. The refund amount is
// computed server-side from the cancellation policy; any amount in the
// request body is ignored.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	booking, err := h.service.Cancel(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "booking can no longer be cancelled"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("booking_id", id).
			Msg("failed to cancel booking")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("booking_id", booking.ID).
		Int("refund_amount", booking.RefundAmount).
		Msg("booking cancelled")

	return c.JSON(booking)
}

// RefundPreview handles GET /api/bookings/:id/refund.
func (h *BookingHandler) RefundPreview(c *fiber.Ctx) error {
	id := c.Params("id")

	preview, err := h.service.RefundPreview(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "booking not found"})
		}
		log.Error().Err(err).Str("booking_id", id).Msg("failed to compute refund preview")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(preview)
}
