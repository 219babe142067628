package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TxQuerier is implemented by both pgxpool.Pool and pgx.Tx, so repository
// methods that must run inside a booking transaction accept it instead of
// a concrete pool.
type TxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewPool opens a PostgreSQL pool and verifies it with a ping before
// returning. Connection failures are retried with exponential backoff
// (1s, 2s, 4s, ...); pool sizing comes from the DSN's pool_* parameters.
func NewPool(ctx context.Context, dsn string, maxRetries int) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	attempts := maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Info().
					Str("host", poolCfg.ConnConfig.Host).
					Str("database", poolCfg.ConnConfig.Database).
					Int32("max_conns", poolCfg.MaxConns).
					Msg("database connection established")
				return pool, nil
			} else {
				pool.Close()
				err = fmt.Errorf("ping failed: %w", pingErr)
			}
		}

		if attempt == attempts {
			break
		}

		backoff := time.Duration(1<<(attempt-1)) * time.Second
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", attempts).
			Dur("next_retry_in", backoff).
			Msg("database connection failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, err)
}
