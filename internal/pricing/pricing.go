// Package pricing holds the pure booking arithmetic: quote computation,
// discount amounts and the cancellation refund policy. All monetary values
// are integers in minor currency units; division floors (truncates toward
// zero) so fractional cents never appear. Functions here perform no I/O and
// take "now" explicitly where the clock matters.
package pricing

import (
	"math"
	"time"

	"github.com/stylehub/booking-api/internal/model"
)

// Quote is the price breakdown for a set of selected services and an
// optional discount.
type Quote struct {
	Subtotal       int
	DiscountAmount int
	Total          int
	TotalDuration  int
}

// Subtotal sums the prices of the selected services.
func Subtotal(services []model.Service) int {
	sum := 0
	for _, svc := range services {
		sum += svc.Price
	}
	return sum
}

// TotalDuration sums the durations of the selected services, in minutes.
func TotalDuration(services []model.Service) int {
	sum := 0
	for _, svc := range services {
		sum += svc.Duration
	}
	return sum
}

// DiscountAmount computes how much a discount code takes off the given
// subtotal. Percentage discounts floor; fixed discounts are not capped at
// the subtotal (the quote clamps the total at zero instead). A nil code
// yields zero.
func DiscountAmount(code *model.DiscountCode, subtotal int) int {
	if code == nil {
		return 0
	}
	switch code.DiscountType {
	case model.DiscountPercentage:
		return subtotal * code.DiscountValue / 100
	case model.DiscountFixed:
		return code.DiscountValue
	default:
		return 0
	}
}

// ComputeQuote computes the full price breakdown for a service selection.
// Pure and idempotent: the same inputs always yield the same quote,
// regardless of selection order.
func ComputeQuote(services []model.Service, code *model.DiscountCode) Quote {
	subtotal := Subtotal(services)
	discount := DiscountAmount(code, subtotal)
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          total,
		TotalDuration:  TotalDuration(services),
	}
}

const (
	fullRefundHours = 24
	partialPercent  = 50
)

// CalculateRefund applies the cancellation policy to a booking total given
// its scheduled start and the current time. With H whole hours until the
// start: H >= 24 refunds 100%, 0 < H < 24 refunds 50% (floored), and a
// started or past booking refunds nothing. The percentage is rounded for
// display and is 0 when the total is 0.
func CalculateRefund(totalAmount int, start, now time.Time) (amount, percentage int) {
	h := HoursUntil(start, now)
	switch {
	case h >= fullRefundHours:
		amount = totalAmount
	case h > 0:
		amount = totalAmount * partialPercent / 100
	default:
		amount = 0
	}
	if totalAmount > 0 {
		percentage = int(math.Round(float64(amount) / float64(totalAmount) * 100))
	}
	return amount, percentage
}
