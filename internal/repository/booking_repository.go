package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
	"github.com/stylehub/booking-api/pkg/database"
)

// BookingRepository provides data access for bookings using pgx.
type BookingRepository struct {
	pool ReadPoolInterface
}

// NewBookingRepository creates a new BookingRepository with the given pool.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// NewBookingRepositoryWithPool creates a BookingRepository with a custom
// pool interface. This is primarily used for testing.
func NewBookingRepositoryWithPool(pool ReadPoolInterface) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, user_id, stylist_id, service_ids, date, start_time, end_time,
	total_amount, discount_code, discount_amount, status, payment_method,
	payment_status, refund_amount, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.StylistID,
		&b.ServiceIDs,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.TotalAmount,
		&b.DiscountCode,
		&b.DiscountAmount,
		&b.Status,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.RefundAmount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert inserts a new booking within a transaction, alongside the slot
// claim that reserves its time.
func (r *BookingRepository) Insert(ctx context.Context, tx database.TxQuerier, b *model.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.UserID, b.StylistID, b.ServiceIDs, b.Date, b.StartTime, b.EndTime,
		b.TotalAmount, b.DiscountCode, b.DiscountAmount, b.Status, b.PaymentMethod,
		b.PaymentStatus, b.RefundAmount, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID.
// Returns nil, nil if the booking is not found (service layer handles this).
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

// GetForUpdate retrieves a booking with a row lock (SELECT FOR UPDATE),
// serializing concurrent status changes and cancellations.
// Returns service.ErrBookingNotFound if the booking doesn't exist.
func (r *BookingRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	b, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking for update %s: %w", id, err)
	}
	return b, nil
}

// ListByUser retrieves all bookings created by a user, newest first.
// On success, returns an empty slice (not nil) when no bookings exist.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings rows: %w", err)
	}
	return bookings, nil
}

// UpdateStatus overwrites a booking's status and payment status.
// Must be called within a transaction after locking the row; transition
// validation is the service layer's job.
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx database.TxQuerier, id string, status model.BookingStatus, paymentStatus model.PaymentStatus, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`

	_, err := tx.Exec(ctx, query, id, status, paymentStatus, updatedAt)
	if err != nil {
		return fmt.Errorf("update booking status %s: %w", id, err)
	}
	return nil
}

// RecordCancellation marks a booking cancelled and records the refund.
// Must be called within a transaction after locking the row.
func (r *BookingRepository) RecordCancellation(ctx context.Context, tx database.TxQuerier, id string, refundAmount int, paymentStatus model.PaymentStatus, updatedAt time.Time) error {
	query := `UPDATE bookings
		SET status = $2, payment_status = $3, refund_amount = $4, updated_at = $5
		WHERE id = $1`

	_, err := tx.Exec(ctx, query, id, model.StatusCancelled, paymentStatus, refundAmount, updatedAt)
	if err != nil {
		return fmt.Errorf("record cancellation %s: %w", id, err)
	}
	return nil
}
