package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/pricing"
)

// DiscountRepositoryInterface defines the interface for discount code data access.
type DiscountRepositoryInterface interface {
	GetByCode(ctx context.Context, code string) (*model.DiscountCode, error)
}

// DiscountService provides business logic for discount code resolution.
// Resolution is a read-only preview: it never touches used_count. Usage is
// consumed separately, inside the booking confirmation transaction.
type DiscountService struct {
	repo DiscountRepositoryInterface
	now  func() time.Time
}

// NewDiscountService creates a new DiscountService with the given repository.
func NewDiscountService(repo DiscountRepositoryInterface) *DiscountService {
	return &DiscountService{repo: repo, now: time.Now}
}

// NewDiscountServiceWithClock creates a DiscountService with a custom clock.
// Primarily used for testing.
func NewDiscountServiceWithClock(repo DiscountRepositoryInterface, now func() time.Time) *DiscountService {
	return &DiscountService{repo: repo, now: now}
}

// NormalizeCode trims surrounding whitespace and uppercases a discount code.
// Codes are stored and compared in this form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve validates a discount code and returns it unmodified.
// Checks run in order:
//   - ErrDiscountNotFound if no such code exists
//   - ErrDiscountExpired if expires_at is set and in the past
//   - ErrDiscountUsageLimit if max_uses is set and used_count has reached it
//   - ErrDiscountInactive if the code has been deactivated
//
// min_amount is carried on the record but does not gate resolution.
func (s *DiscountService) Resolve(ctx context.Context, code string) (*model.DiscountCode, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrDiscountNotFound
	}

	dc, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get discount code: %w", err)
	}
	if dc == nil {
		return nil, ErrDiscountNotFound
	}

	if dc.ExpiresAt != nil && dc.ExpiresAt.Before(s.now()) {
		return nil, ErrDiscountExpired
	}
	if dc.MaxUses != nil && dc.UsedCount >= *dc.MaxUses {
		return nil, ErrDiscountUsageLimit
	}
	if !dc.IsActive {
		return nil, ErrDiscountInactive
	}

	return dc, nil
}

// ResolveForSubtotal validates a code and computes the amount it would take
// off the given subtotal. Used by the discount preview endpoint.
func (s *DiscountService) ResolveForSubtotal(ctx context.Context, code string, subtotal int) (*model.DiscountResponse, error) {
	dc, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	return &model.DiscountResponse{
		Code:           dc.Code,
		DiscountType:   dc.DiscountType,
		DiscountValue:  dc.DiscountValue,
		MinAmount:      dc.MinAmount,
		DiscountAmount: pricing.DiscountAmount(dc, subtotal),
	}, nil
}
