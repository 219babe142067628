package model

import "time"

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus enumerates the payment lifecycle states.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// bookingTransitions is the allowed status transition table.
// completed and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid reports whether the status is one of the known lifecycle states.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// lifecycle state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether the payment status is a known variant.
func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentRefunded
}

// Booking is a confirmed-or-in-progress reservation of a stylist's time.
// Monetary fields are minor currency units. Bookings are never deleted;
// cancellation is a status transition.
type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	StylistID      string        `json:"stylist_id"`
	ServiceIDs     []string      `json:"service_ids"`
	Date           string        `json:"date"`
	StartTime      string        `json:"start_time"`
	EndTime        string        `json:"end_time"`
	TotalAmount    int           `json:"total_amount"`
	DiscountCode   *string       `json:"discount_code"`
	DiscountAmount int           `json:"discount_amount"`
	Status         BookingStatus `json:"status"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	RefundAmount   int           `json:"refund_amount"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// QuoteRequest is the DTO for POST /api/bookings/quote.
type QuoteRequest struct {
	StylistID    string   `json:"stylist_id" validate:"required,notblank"`
	ServiceIDs   []string `json:"service_ids" validate:"required,min=1,dive,required"`
	DiscountCode string   `json:"discount_code"`
}

// QuoteResponse is the computed price breakdown for a service selection.
type QuoteResponse struct {
	Subtotal       int `json:"subtotal"`
	DiscountAmount int `json:"discount_amount"`
	Total          int `json:"total"`
	TotalDuration  int `json:"total_duration"`
}

// CreateBookingRequest is the DTO for POST /api/bookings. The server derives
// date, start and end times from the referenced time slot and recomputes all
// amounts from the catalog; client-side totals are never trusted.
type CreateBookingRequest struct {
	UserID        string   `json:"user_id" validate:"required,notblank,max=255"`
	StylistID     string   `json:"stylist_id" validate:"required,notblank,max=255"`
	ServiceIDs    []string `json:"service_ids" validate:"required,min=1,dive,required"`
	TimeSlotID    string   `json:"time_slot_id" validate:"required,notblank"`
	DiscountCode  string   `json:"discount_code"`
	PaymentMethod string   `json:"payment_method" validate:"required,notblank,max=64"`
}

// UpdateBookingStatusRequest is the DTO for PATCH /api/bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status        string `json:"status" validate:"required,notblank"`
	PaymentStatus string `json:"payment_status"`
}

// RefundPreview is the response DTO for GET /api/bookings/:id/refund.
// RefundPercentage is rounded to the nearest whole percent.
type RefundPreview struct {
	RefundAmount     int `json:"refund_amount"`
	RefundPercentage int `json:"refund_percentage"`
}
