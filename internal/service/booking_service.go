package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/pricing"
	"github.com/stylehub/booking-api/pkg/database"
)

// BookingRepositoryInterface defines the interface for booking data access.
type BookingRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, tx database.TxQuerier, id string, status model.BookingStatus, paymentStatus model.PaymentStatus, updatedAt time.Time) error
	RecordCancellation(ctx context.Context, tx database.TxQuerier, id string, refundAmount int, paymentStatus model.PaymentStatus, updatedAt time.Time) error
}

// SlotClaimer defines the transactional interface for claiming time slots.
type SlotClaimer interface {
	GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.TimeSlot, error)
	MarkUnavailable(ctx context.Context, tx database.TxQuerier, id string) error
}

// ServiceLoader loads catalog services for quote computation.
type ServiceLoader interface {
	GetServicesByIDs(ctx context.Context, ids []string) ([]model.Service, error)
}

// DiscountResolver validates discount codes for preview and booking.
type DiscountResolver interface {
	Resolve(ctx context.Context, code string) (*model.DiscountCode, error)
}

// DiscountUsageRepository consumes discount code usage transactionally.
type DiscountUsageRepository interface {
	ConsumeUsage(ctx context.Context, tx database.TxQuerier, code string) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BookingService provides the booking lifecycle business logic: quoting,
// creation with an atomic slot claim, status transitions and cancellation
// with the refund policy applied server-side.
type BookingService struct {
	pool      TxBeginner
	bookings  BookingRepositoryInterface
	slots     SlotClaimer
	catalog   ServiceLoader
	discounts DiscountResolver
	usage     DiscountUsageRepository
	now       func() time.Time
}

// NewBookingService creates a new BookingService with the given pool and
// collaborators.
func NewBookingService(
	pool *pgxpool.Pool,
	bookings BookingRepositoryInterface,
	slots SlotClaimer,
	catalog ServiceLoader,
	discounts DiscountResolver,
	usage DiscountUsageRepository,
) *BookingService {
	return &BookingService{
		pool:      pool,
		bookings:  bookings,
		slots:     slots,
		catalog:   catalog,
		discounts: discounts,
		usage:     usage,
		now:       time.Now,
	}
}

// NewBookingServiceWithDeps creates a BookingService with a custom TxBeginner
// and clock. Primarily used for testing.
func NewBookingServiceWithDeps(
	pool TxBeginner,
	bookings BookingRepositoryInterface,
	slots SlotClaimer,
	catalog ServiceLoader,
	discounts DiscountResolver,
	usage DiscountUsageRepository,
	now func() time.Time,
) *BookingService {
	return &BookingService{
		pool:      pool,
		bookings:  bookings,
		slots:     slots,
		catalog:   catalog,
		discounts: discounts,
		usage:     usage,
		now:       now,
	}
}

// loadSelection fetches the selected services and resolves the optional
// discount code, returning both for quote computation.
// Returns ErrServiceNotFound if any requested service ID is unknown.
func (s *BookingService) loadSelection(ctx context.Context, serviceIDs []string, discountCode string) ([]model.Service, *model.DiscountCode, error) {
	services, err := s.catalog.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load services: %w", err)
	}
	found := make(map[string]bool, len(services))
	for _, svc := range services {
		found[svc.ID] = true
	}
	for _, id := range serviceIDs {
		if !found[id] {
			return nil, nil, ErrServiceNotFound
		}
	}

	var dc *model.DiscountCode
	if discountCode != "" {
		dc, err = s.discounts.Resolve(ctx, discountCode)
		if err != nil {
			return nil, nil, err
		}
	}
	return services, dc, nil
}

// Quote computes the price breakdown for a service selection without
// creating anything. Safe to call repeatedly as the selection changes.
func (s *BookingService) Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	if req == nil || len(req.ServiceIDs) == 0 {
		return nil, ErrIncompleteBooking
	}

	services, dc, err := s.loadSelection(ctx, req.ServiceIDs, req.DiscountCode)
	if err != nil {
		return nil, err
	}

	q := pricing.ComputeQuote(services, dc)
	return &model.QuoteResponse{
		Subtotal:       q.Subtotal,
		DiscountAmount: q.DiscountAmount,
		Total:          q.Total,
		TotalDuration:  q.TotalDuration,
	}, nil
}

// Create creates a booking in status pending/payment pending. The time slot
// is locked and claimed in the same transaction as the insert, so two
// concurrent bookers cannot take the same slot. Amounts are recomputed from
// the catalog; the discount code is validated but its usage is only consumed
// at confirmation.
// Returns:
//   - ErrIncompleteBooking if services or the time slot are missing
//   - ErrSlotNotFound / ErrSlotMismatch / ErrSlotUnavailable for slot problems
//   - ErrServiceNotFound if a selected service is unknown
//   - discount resolution errors as from DiscountService.Resolve
func (s *BookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if req == nil || len(req.ServiceIDs) == 0 || req.TimeSlotID == "" {
		return nil, ErrIncompleteBooking
	}

	services, dc, err := s.loadSelection(ctx, req.ServiceIDs, req.DiscountCode)
	if err != nil {
		return nil, err
	}
	quote := pricing.ComputeQuote(services, dc)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	// Lock the slot row, then claim it
	slot, err := s.slots.GetForUpdate(ctx, tx, req.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if slot.StylistID != req.StylistID {
		return nil, ErrSlotMismatch
	}
	if !slot.IsAvailable {
		return nil, ErrSlotUnavailable
	}
	if err := s.slots.MarkUnavailable(ctx, tx, slot.ID); err != nil {
		return nil, fmt.Errorf("claim slot: %w", err)
	}

	endTime, err := pricing.AddMinutes(slot.StartTime, quote.TotalDuration)
	if err != nil {
		return nil, fmt.Errorf("compute end time: %w", err)
	}

	now := s.now()
	booking := &model.Booking{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		StylistID:      req.StylistID,
		ServiceIDs:     req.ServiceIDs,
		Date:           slot.Date,
		StartTime:      slot.StartTime,
		EndTime:        endTime,
		TotalAmount:    quote.Total,
		DiscountAmount: quote.DiscountAmount,
		Status:         model.StatusPending,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  model.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if dc != nil {
		booking.DiscountCode = &dc.Code
	}

	if err := s.bookings.Insert(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return booking, nil
}

// GetByID retrieves a booking by ID.
// Returns ErrBookingNotFound if the booking doesn't exist.
func (s *BookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListByUser returns all bookings created by a user, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateStatus moves a booking through the lifecycle state machine.
// Transitions outside the table (pending->confirmed->completed, cancelled
// from pending or confirmed) are rejected with ErrInvalidTransition.
// Confirming a booking that carries a discount code consumes one usage of
// the code in the same transaction, so a failed confirmation never inflates
// the counter.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status, paymentStatus string) (*model.Booking, error) {
	next := model.BookingStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	var nextPayment model.PaymentStatus
	if paymentStatus != "" {
		nextPayment = model.PaymentStatus(paymentStatus)
		if !nextPayment.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booking, err := s.bookings.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	if nextPayment == "" {
		nextPayment = booking.PaymentStatus
	}

	// Consume discount usage when the booking becomes real
	if booking.Status == model.StatusPending && next == model.StatusConfirmed && booking.DiscountCode != nil {
		if err := s.usage.ConsumeUsage(ctx, tx, *booking.DiscountCode); err != nil {
			return nil, err
		}
	}

	now := s.now()
	if err := s.bookings.UpdateStatus(ctx, tx, id, next, nextPayment, now); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	booking.Status = next
	booking.PaymentStatus = nextPayment
	booking.UpdatedAt = now
	return booking, nil
}

// Cancel cancels a pending or confirmed booking. The refund is computed
// server-side from the policy at cancellation time: 100% at 24 or more
// whole hours before the start, 50% inside the window, nothing once the
// start has passed. Payment status becomes refunded only when the refund
// is positive. Cancelling a completed or already-cancelled booking is
// rejected, so a second cancel can never overwrite the recorded refund.
func (s *BookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booking, err := s.bookings.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	start, err := pricing.CombineDateTime(booking.Date, booking.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse booking start: %w", err)
	}
	refund, _ := pricing.CalculateRefund(booking.TotalAmount, start, s.now())

	paymentStatus := booking.PaymentStatus
	if refund > 0 {
		paymentStatus = model.PaymentRefunded
	}

	now := s.now()
	if err := s.bookings.RecordCancellation(ctx, tx, id, refund, paymentStatus, now); err != nil {
		return nil, fmt.Errorf("record cancellation: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	booking.Status = model.StatusCancelled
	booking.PaymentStatus = paymentStatus
	booking.RefundAmount = refund
	booking.UpdatedAt = now
	return booking, nil
}

// RefundPreview computes what a cancellation right now would refund.
// Recomputed on every call: the 24-hour boundary is clock-dependent.
func (s *BookingService) RefundPreview(ctx context.Context, id string) (*model.RefundPreview, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	start, err := pricing.CombineDateTime(booking.Date, booking.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse booking start: %w", err)
	}
	amount, pct := pricing.CalculateRefund(booking.TotalAmount, start, s.now())
	return &model.RefundPreview{RefundAmount: amount, RefundPercentage: pct}, nil
}
