// Package db owns the Postgres connection pool and schema migrations.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultConnectRetries = 5
	defaultRetryDelay     = 2 * time.Second
)

// NewPool connects to Postgres, retrying while the database comes up, and
// verifies the connection with a ping.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := config.ConfigurePostgresPool(cfg)
	if err != nil {
		return nil, err
	}
	return connectWithRetry(ctx, poolCfg, defaultConnectRetries, defaultRetryDelay)
}

func connectWithRetry(ctx context.Context, poolCfg *pgxpool.Config, maxRetries int, delay time.Duration) (*pgxpool.Pool, error) {
	log := logger.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Infow("Connected to database",
					"host", poolCfg.ConnConfig.Host,
					"database", poolCfg.ConnConfig.Database,
					"maxConns", poolCfg.MaxConns)
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warnw("Database connection attempt failed", "attempt", attempt, "maxRetries", maxRetries, "error", err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("database connection cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
}
