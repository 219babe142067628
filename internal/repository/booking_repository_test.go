package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
)

func fillBookingRow(id string) func(dest ...any) error {
	return func(dest ...any) error {
		code := "WELCOME20"
		*(dest[0].(*string)) = id
		*(dest[1].(*string)) = "user-1"
		*(dest[2].(*string)) = "stylist-1"
		*(dest[3].(*[]string)) = []string{"svc-1", "svc-2"}
		*(dest[4].(*string)) = "2025-06-20"
		*(dest[5].(*string)) = "14:00"
		*(dest[6].(*string)) = "19:00"
		*(dest[7].(*int)) = 60000
		*(dest[8].(**string)) = &code
		*(dest[9].(*int)) = 15000
		*(dest[10].(*model.BookingStatus)) = model.StatusPending
		*(dest[11].(*string)) = "credit_card"
		*(dest[12].(*model.PaymentStatus)) = model.PaymentPending
		*(dest[13].(*int)) = 0
		*(dest[14].(*time.Time)) = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
		*(dest[15].(*time.Time)) = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
		return nil
	}
}

func TestBookingRepository_Insert_Success(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	mockTx := &mockTxQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = arguments
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}

	code := "WELCOME20"
	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	err := repo.Insert(context.Background(), mockTx, &model.Booking{
		ID:             "bk-1",
		UserID:         "user-1",
		StylistID:      "stylist-1",
		ServiceIDs:     []string{"svc-1", "svc-2"},
		Date:           "2025-06-20",
		StartTime:      "14:00",
		EndTime:        "19:00",
		TotalAmount:    60000,
		DiscountCode:   &code,
		DiscountAmount: 15000,
		Status:         model.StatusPending,
		PaymentMethod:  "credit_card",
		PaymentStatus:  model.PaymentPending,
	})

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "INSERT INTO bookings")
	assert.Equal(t, "bk-1", capturedArgs[0])
	assert.Equal(t, "user-1", capturedArgs[1])
	assert.Equal(t, 60000, capturedArgs[7])
	assert.Equal(t, model.StatusPending, capturedArgs[10])
}

func TestBookingRepository_Insert_DatabaseError(t *testing.T) {
	dbErr := errors.New("connection refused")
	mockTx := &mockTxQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		},
	}

	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	err := repo.Insert(context.Background(), mockTx, &model.Booking{ID: "bk-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert booking")
	assert.True(t, errors.Is(err, dbErr), "should wrap original error")
}

func TestBookingRepository_GetByID_Success(t *testing.T) {
	mock := &mockReadPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{scanFn: fillBookingRow("bk-1")}
		},
	}

	repo := NewBookingRepositoryWithPool(mock)
	booking, err := repo.GetByID(context.Background(), "bk-1")

	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, "bk-1", booking.ID)
	assert.Equal(t, []string{"svc-1", "svc-2"}, booking.ServiceIDs)
	assert.Equal(t, 60000, booking.TotalAmount)
	require.NotNil(t, booking.DiscountCode)
	assert.Equal(t, "WELCOME20", *booking.DiscountCode)
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	mock := &mockReadPool{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{
				scanFn: func(dest ...any) error {
					return pgx.ErrNoRows
				},
			}
		},
	}

	repo := NewBookingRepositoryWithPool(mock)
	booking, err := repo.GetByID(context.Background(), "bk-404")

	require.NoError(t, err)
	assert.Nil(t, booking, "Should return nil for not found")
}

func TestBookingRepository_GetForUpdate_Success(t *testing.T) {
	mockTx := &mockTxQuerier{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			assert.Contains(t, sql, "FOR UPDATE", "Query must use FOR UPDATE for row locking")
			return &mockRow{scanFn: fillBookingRow("bk-1")}
		},
	}

	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	booking, err := repo.GetForUpdate(context.Background(), mockTx, "bk-1")

	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, model.StatusPending, booking.Status)
}

func TestBookingRepository_GetForUpdate_NotFound(t *testing.T) {
	mockTx := &mockTxQuerier{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &mockRow{
				scanFn: func(dest ...any) error {
					return pgx.ErrNoRows
				},
			}
		},
	}

	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	booking, err := repo.GetForUpdate(context.Background(), mockTx, "bk-404")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrBookingNotFound), "should return ErrBookingNotFound")
	assert.Nil(t, booking)
}

func TestBookingRepository_ListByUser_Success(t *testing.T) {
	var capturedSQL string
	mock := &mockReadPool{
		queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			capturedSQL = sql
			return &mockRows{
				scanFns: []func(dest ...any) error{
					fillBookingRow("bk-2"),
					fillBookingRow("bk-1"),
				},
			}, nil
		},
	}

	repo := NewBookingRepositoryWithPool(mock)
	bookings, err := repo.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "bk-2", bookings[0].ID)
	assert.Contains(t, capturedSQL, "ORDER BY created_at DESC", "history must come back newest first")
}

func TestBookingRepository_ListByUser_Empty(t *testing.T) {
	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	bookings, err := repo.ListByUser(context.Background(), "user-unseen")

	require.NoError(t, err)
	assert.NotNil(t, bookings, "empty history is an empty slice, not nil")
	assert.Len(t, bookings, 0)
}

func TestBookingRepository_UpdateStatus_Success(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	mockTx := &mockTxQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = arguments
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	err := repo.UpdateStatus(context.Background(), mockTx, "bk-1", model.StatusConfirmed, model.PaymentPaid, now)

	require.NoError(t, err)
	assert.Contains(t, capturedSQL, "UPDATE bookings")
	assert.Equal(t, "bk-1", capturedArgs[0])
	assert.Equal(t, model.StatusConfirmed, capturedArgs[1])
	assert.Equal(t, model.PaymentPaid, capturedArgs[2])
	assert.Equal(t, now, capturedArgs[3])
}

func TestBookingRepository_RecordCancellation_Success(t *testing.T) {
	var capturedArgs []any
	mockTx := &mockTxQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedArgs = arguments
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	err := repo.RecordCancellation(context.Background(), mockTx, "bk-1", 30000, model.PaymentRefunded, now)

	require.NoError(t, err)
	assert.Equal(t, "bk-1", capturedArgs[0])
	assert.Equal(t, model.StatusCancelled, capturedArgs[1], "cancellation always lands on the cancelled status")
	assert.Equal(t, model.PaymentRefunded, capturedArgs[2])
	assert.Equal(t, 30000, capturedArgs[3])
}

func TestBookingRepository_RecordCancellation_DatabaseError(t *testing.T) {
	dbErr := errors.New("database connection failed")
	mockTx := &mockTxQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		},
	}

	repo := NewBookingRepositoryWithPool(&mockReadPool{})
	err := repo.RecordCancellation(context.Background(), mockTx, "bk-1", 0, model.PaymentPaid, time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "record cancellation")
	assert.True(t, errors.Is(err, dbErr), "should wrap original error")
}
