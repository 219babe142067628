package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stylehub/booking-api/internal/model"
	"github.com/stylehub/booking-api/internal/service"
	"github.com/stylehub/booking-api/pkg/database"
)

// SlotRepository provides data access for time slots using pgx.
type SlotRepository struct {
	pool ReadPoolInterface
}

// NewSlotRepository creates a new SlotRepository with the given pool.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// NewSlotRepositoryWithPool creates a SlotRepository with a custom pool
// interface. This is primarily used for testing.
func NewSlotRepositoryWithPool(pool ReadPoolInterface) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// ListAvailable retrieves a stylist's open slots for a date, ordered by
// start time ascending.
func (r *SlotRepository) ListAvailable(ctx context.Context, stylistID, date string) ([]model.TimeSlot, error) {
	query := `SELECT id, stylist_id, date, start_time, end_time, is_available
		FROM time_slots
		WHERE stylist_id = $1 AND date = $2 AND is_available
		ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("list slots for stylist %s on %s: %w", stylistID, date, err)
	}
	defer rows.Close()

	slots := []model.TimeSlot{}
	for rows.Next() {
		var slot model.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.StylistID, &slot.Date,
			&slot.StartTime, &slot.EndTime, &slot.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slot rows: %w", err)
	}
	return slots, nil
}

// GetForUpdate retrieves a time slot with a row lock (SELECT FOR UPDATE).
// The lock holds until the transaction completes, serializing competing
// claims on the same slot.
// Returns service.ErrSlotNotFound if the slot doesn't exist.
func (r *SlotRepository) GetForUpdate(ctx context.Context, tx database.TxQuerier, id string) (*model.TimeSlot, error) {
	query := `SELECT id, stylist_id, date, start_time, end_time, is_available
		FROM time_slots WHERE id = $1 FOR UPDATE`

	var slot model.TimeSlot
	err := tx.QueryRow(ctx, query, id).Scan(&slot.ID, &slot.StylistID, &slot.Date,
		&slot.StartTime, &slot.EndTime, &slot.IsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrSlotNotFound
		}
		return nil, fmt.Errorf("get slot for update %s: %w", id, err)
	}
	return &slot, nil
}

// MarkUnavailable claims a slot by flipping is_available to false.
// Must be called within a transaction after locking the row.
func (r *SlotRepository) MarkUnavailable(ctx context.Context, tx database.TxQuerier, id string) error {
	query := `UPDATE time_slots SET is_available = FALSE WHERE id = $1`

	_, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark slot %s unavailable: %w", id, err)
	}
	return nil
}
