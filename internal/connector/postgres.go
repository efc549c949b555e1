package connector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

// Postgres opens a pgx pool for dsn and waits until the database answers.
// maxConns <= 0 keeps the pgx default.
func Postgres(ctx context.Context, dsn string, maxConns int32, retry RetryOptions, log logger.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	addr := fmt.Sprintf("%s:%d/%s", cfg.ConnConfig.Host, cfg.ConnConfig.Port, cfg.ConnConfig.Database)
	if err := WaitReady(ctx, "postgres", addr, pool.Ping, retry, log); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
