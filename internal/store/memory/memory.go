package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
)

// Store keeps history and shares in process memory.
// It backs single-node deployments without Redis or Postgres, and tests.
type Store struct {
	mu      sync.RWMutex
	history []domain.HistoryItem     // newest first
	shares  map[string]*domain.Share // ID -> Share
}

// New creates an empty memory store
func New() *Store {
	return &Store{
		shares: make(map[string]*domain.Share),
	}
}

func (s *Store) Name() string { return "memory" }

func (s *Store) Ping(context.Context) error { return nil }

// ListHistory returns up to limit items, newest first
func (s *Store) ListHistory(_ context.Context, limit int) ([]domain.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	items := make([]domain.HistoryItem, n)
	copy(items, s.history[:n])
	return items, nil
}

// InsertHistory adds item and keeps the keep most recent entries
func (s *Store) InsertHistory(_ context.Context, item domain.HistoryItem, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append([]domain.HistoryItem{item}, s.history...)
	// Stable: on equal timestamps the latest insert stays first
	sort.SliceStable(s.history, func(i, j int) bool {
		return s.history[i].Timestamp > s.history[j].Timestamp
	})
	if keep > 0 && len(s.history) > keep {
		s.history = s.history[:keep]
	}
	return nil
}

func (s *Store) ClearHistory(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	return nil
}

// InsertShare stores a share, refusing to overwrite an existing id
func (s *Store) InsertShare(_ context.Context, share domain.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shares[share.ID]; exists {
		return store.ErrShareExists
	}
	urls := make([]string, len(share.URLs))
	copy(urls, share.URLs)
	share.URLs = urls
	s.shares[share.ID] = &share
	return nil
}

func (s *Store) GetShare(_ context.Context, id string) (*domain.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	share, ok := s.shares[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *share
	return &cp, nil
}

// PurgeShares removes shares created before the cutoff
func (s *Store) PurgeShares(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, share := range s.shares {
		if share.CreatedAt.Before(before) {
			delete(s.shares, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored history items and shares
func (s *Store) Count() (history, shares int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.history), len(s.shares)
}

func (s *Store) Close() error { return nil }
