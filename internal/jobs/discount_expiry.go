// Package jobs holds the background maintenance tasks run on a cron
// schedule alongside the API server.
package jobs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Execer is the database capability the sweeper needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// DiscountExpirySweeper deactivates discount codes whose expiry has passed.
// The resolver checks expires_at on every lookup, so the sweep is hygiene
// rather than correctness: it keeps is_active truthful for reporting and
// lets operators see dead codes at a glance.
type DiscountExpirySweeper struct {
	pool    Execer
	timeout time.Duration
}

// NewDiscountExpirySweeper creates a sweeper over the given pool.
func NewDiscountExpirySweeper(pool Execer) *DiscountExpirySweeper {
	return &DiscountExpirySweeper{pool: pool, timeout: 30 * time.Second}
}

// Run performs one sweep. Safe to call concurrently with API traffic; the
// UPDATE only touches rows that are both active and past expiry.
func (s *DiscountExpirySweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx,
		`UPDATE discount_codes
		 SET is_active = FALSE
		 WHERE is_active AND expires_at IS NOT NULL AND expires_at < NOW()`)
	if err != nil {
		log.Error().Err(err).Msg("discount expiry sweep failed")
		return
	}
	if n := tag.RowsAffected(); n > 0 {
		log.Info().Int64("deactivated", n).Msg("expired discount codes deactivated")
	}
}
