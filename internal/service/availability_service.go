package service

import (
	"context"
	"fmt"

	"github.com/stylehub/booking-api/internal/model"
)

// SlotReader defines the read-side interface for time slot data access.
type SlotReader interface {
	ListAvailable(ctx context.Context, stylistID, date string) ([]model.TimeSlot, error)
}

// AvailabilityService answers "which slots can still be booked" queries.
// Claiming a slot is not done here: it happens atomically inside the
// booking creation transaction so two bookers cannot take the same slot.
type AvailabilityService struct {
	slots SlotReader
}

// NewAvailabilityService creates a new AvailabilityService with the given
// slot repository.
func NewAvailabilityService(slots SlotReader) *AvailabilityService {
	return &AvailabilityService{slots: slots}
}

// ListAvailable returns a stylist's open slots for a calendar date, ordered
// by start time ascending. Slots already claimed by a booking are excluded.
func (s *AvailabilityService) ListAvailable(ctx context.Context, stylistID, date string) ([]model.TimeSlot, error) {
	slots, err := s.slots.ListAvailable(ctx, stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return slots, nil
}
