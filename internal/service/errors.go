package service

import "errors"

var (
	// ErrStylistNotFound is returned when a stylist cannot be found
	ErrStylistNotFound = errors.New("stylist not found")

	// ErrServiceNotFound is returned when a catalog service cannot be found
	ErrServiceNotFound = errors.New("service not found")

	// ErrBookingNotFound is returned when a booking cannot be found
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotNotFound is returned when a time slot cannot be found
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrSlotUnavailable is returned when a time slot has already been claimed
	ErrSlotUnavailable = errors.New("time slot is no longer available")

	// ErrSlotMismatch is returned when a time slot belongs to a different stylist
	ErrSlotMismatch = errors.New("time slot does not belong to stylist")

	// ErrDiscountNotFound is returned when a discount code does not exist
	ErrDiscountNotFound = errors.New("discount code not found")

	// ErrDiscountExpired is returned when a discount code's expiry has passed
	ErrDiscountExpired = errors.New("discount code has expired")

	// ErrDiscountUsageLimit is returned when a discount code's usage cap is reached
	ErrDiscountUsageLimit = errors.New("discount code usage limit reached")

	// ErrDiscountInactive is returned when a discount code has been deactivated
	ErrDiscountInactive = errors.New("discount code is inactive")

	// ErrIncompleteBooking is returned when a booking request is missing
	// selected services or a time slot
	ErrIncompleteBooking = errors.New("booking requires at least one service and a time slot")

	// ErrInvalidStatus is returned when a status value is not a known variant
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidTransition is returned when a status change is not allowed
	// by the booking lifecycle state machine
	ErrInvalidTransition = errors.New("invalid status transition")
)
