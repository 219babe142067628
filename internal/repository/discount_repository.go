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

// DiscountRepository provides data access for discount codes using pgx.
type DiscountRepository struct {
	pool ReadPoolInterface
}

// NewDiscountRepository creates a new DiscountRepository with the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// NewDiscountRepositoryWithPool creates a DiscountRepository with a custom
// pool interface. This is primarily used for testing.
func NewDiscountRepositoryWithPool(pool ReadPoolInterface) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// GetByCode retrieves a discount code by its normalized (uppercase) code.
// Returns nil, nil if the code is not found (service layer handles this).
func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	query := `SELECT code, discount_type, discount_value, min_amount, max_uses,
		used_count, expires_at, is_active, created_at
		FROM discount_codes WHERE code = $1`

	var dc model.DiscountCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&dc.Code,
		&dc.DiscountType,
		&dc.DiscountValue,
		&dc.MinAmount,
		&dc.MaxUses,
		&dc.UsedCount,
		&dc.ExpiresAt,
		&dc.IsActive,
		&dc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("get discount code %s: %w", code, err)
	}
	return &dc, nil
}

// ConsumeUsage increments a code's used_count by 1, guarded against the
// usage cap in the UPDATE itself so the counter can never exceed max_uses
// even under concurrent confirmations.
// Must be called within a transaction.
// Returns service.ErrDiscountUsageLimit if the cap has been reached.
func (r *DiscountRepository) ConsumeUsage(ctx context.Context, tx database.TxQuerier, code string) error {
	query := `UPDATE discount_codes
		SET used_count = used_count + 1
		WHERE code = $1 AND (max_uses IS NULL OR used_count < max_uses)`

	tag, err := tx.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("consume usage for %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrDiscountUsageLimit
	}
	return nil
}
