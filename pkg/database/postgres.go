// Package database provides the PostgreSQL pool shared by the booking API.
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

// TxQuerier is the query surface shared by *pgxpool.Pool and pgx.Tx.
// Repository methods that must run inside the approval transaction accept
// it so the same query code serves both paths.
type TxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewPool opens a connection pool against the booking database and verifies
// it with a ping. The database container often comes up after the API, so
// failed attempts back off exponentially (1s, 2s, 4s, ...) up to retries
// attempts. A non-positive retries still tries once, so a misconfigured
// value can never skip connecting entirely.
func NewPool(ctx context.Context, dsn string, retries int) (*pgxpool.Pool, error) {
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pool, err := connect(ctx, dsn)
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("booking database ready")
			return pool, nil
		}
		lastErr = err

		if attempt == retries {
			break
		}
		backoff := time.Duration(1<<(attempt-1)) * time.Second
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("retries", retries).
			Dur("backoff", backoff).
			Msg("booking database not ready, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("connect to booking database after %d attempts: %w", retries, lastErr)
}

func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	// pgxpool connects lazily; ping so a bad DSN fails here, not on the
	// first request.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
