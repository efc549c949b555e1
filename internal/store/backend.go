// Package store is the persistence layer for history entries and shares.
//
// A Backend talks to one storage engine; Service is the handle the API layer
// receives at startup and enforces the record rules on top of it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
)

// ErrShareExists is returned by InsertShare when the id is already taken.
var ErrShareExists = errors.New("share id already exists")

// Backend is implemented by each storage engine.
type Backend interface {
	// Name identifies the engine in logs ("redis", "postgres", "memory").
	Name() string
	Ping(ctx context.Context) error

	// ListHistory returns at most limit items, newest first.
	ListHistory(ctx context.Context, limit int) ([]domain.HistoryItem, error)
	// InsertHistory stores item, then trims to the keep most recent (best effort).
	InsertHistory(ctx context.Context, item domain.HistoryItem, keep int) error
	ClearHistory(ctx context.Context) error

	InsertShare(ctx context.Context, share domain.Share) error
	// GetShare returns domain.ErrNotFound for unknown ids.
	GetShare(ctx context.Context, id string) (*domain.Share, error)
	// PurgeShares deletes shares created before the cutoff.
	PurgeShares(ctx context.Context, before time.Time) (int, error)

	Close() error
}
