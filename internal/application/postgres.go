package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"thirdcoast.systems/redline/internal/config"
)

var (
	dbBackoffBase  = 1 * time.Second
	dbBackoffScale = 1.618
)

// OpenDBPoolWithRetry opens the label store's PostgreSQL pool, retrying with
// golden ratio backoff until the database answers a ping.
func OpenDBPoolWithRetry(ctx context.Context, conf config.Config) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(conf.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	fmt.Printf("Connecting to label store at %s\n", cfg.ConnConfig.Host)

	var lastErr error
	for attempt := 0; attempt < conf.DatabaseRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(float64(dbBackoffBase) * math.Pow(dbBackoffScale, float64(attempt-1)))
			fmt.Printf("Retrying in %v...\n", backoff)
			time.Sleep(backoff)
		}

		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			lastErr = err
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
		err = pool.Ping(pingCtx)
		cancel()
		if err != nil {
			pool.Close()
			lastErr = err
			continue
		}

		fmt.Printf("Connected to label store at %s\n", cfg.ConnConfig.Host)
		return pool, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", conf.DatabaseRetries, lastErr)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts", conf.DatabaseRetries)
}
