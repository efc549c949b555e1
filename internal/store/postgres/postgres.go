// Package postgres is the relational store backend, on a pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS history_entries (
		id         TEXT PRIMARY KEY,
		timestamp  BIGINT NOT NULL,
		url_count  INTEGER NOT NULL,
		preview    TEXT NOT NULL,
		full_text  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS history_entries_timestamp_idx ON history_entries (timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS shares (
		id          TEXT PRIMARY KEY,
		urls        TEXT NOT NULL,
		created_at  BIGINT NOT NULL
	)`,
}

// Store persists history and shares in PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

// New wraps pool and creates the tables if they do not exist
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ListHistory returns up to limit items, newest first
func (s *Store) ListHistory(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, timestamp, url_count, preview, full_text
		   FROM history_entries
		  ORDER BY timestamp DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	items := make([]domain.HistoryItem, 0, limit)
	for rows.Next() {
		var (
			item    domain.HistoryItem
			preview string
		)
		if err := rows.Scan(&item.ID, &item.Timestamp, &item.URLCount, &preview, &item.FullText); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		item.Preview = domain.ParseStringList([]byte(preview))
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return items, nil
}

// InsertHistory stores item, then deletes everything beyond the keep most recent
func (s *Store) InsertHistory(ctx context.Context, item domain.HistoryItem, keep int) error {
	preview, err := json.Marshal(item.Preview)
	if err != nil {
		return fmt.Errorf("failed to marshal preview: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO history_entries (id, timestamp, url_count, preview, full_text)
		 VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.Timestamp, item.URLCount, string(preview), item.FullText); err != nil {
		return fmt.Errorf("failed to save history item: %w", err)
	}

	if keep > 0 {
		// Trim is best effort: the insert already succeeded
		_, _ = s.pool.Exec(ctx,
			`DELETE FROM history_entries
			  WHERE id NOT IN (
			    SELECT id FROM history_entries ORDER BY timestamp DESC LIMIT $1
			  )`, keep)
	}

	return nil
}

func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// InsertShare stores a share, refusing to overwrite an existing id
func (s *Store) InsertShare(ctx context.Context, share domain.Share) error {
	urls, err := json.Marshal(share.URLs)
	if err != nil {
		return fmt.Errorf("failed to marshal share urls: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO shares (id, urls, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		share.ID, string(urls), share.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrShareExists
	}
	return nil
}

func (s *Store) GetShare(ctx context.Context, id string) (*domain.Share, error) {
	var (
		urls      string
		createdAt int64
	)
	err := s.pool.QueryRow(ctx, `SELECT urls, created_at FROM shares WHERE id = $1`, id).Scan(&urls, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	return &domain.Share{
		ID:        id,
		URLs:      domain.ParseStringList([]byte(urls)),
		CreatedAt: time.UnixMilli(createdAt),
	}, nil
}

// PurgeShares removes shares created before the cutoff
func (s *Store) PurgeShares(ctx context.Context, before time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM shares WHERE created_at < $1`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge shares: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
