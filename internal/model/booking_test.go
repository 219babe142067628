package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Valid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, BookingStatus("shipped").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tc := range testCases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatus_TerminalStatesHaveNoExits(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	for _, terminal := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for _, next := range all {
			assert.False(t, terminal.CanTransitionTo(next),
				"terminal state %s must not transition to %s", terminal, next)
		}
	}
}

func TestPaymentStatus_Valid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentRefunded} {
		assert.True(t, p.Valid())
	}
	assert.False(t, PaymentStatus("declined").Valid())
}

func TestDiscountType_Valid(t *testing.T) {
	assert.True(t, DiscountPercentage.Valid())
	assert.True(t, DiscountFixed.Valid())
	assert.False(t, DiscountType("bogo").Valid())
}
