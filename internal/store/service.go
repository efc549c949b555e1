package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
)

const shareIDAttempts = 3

// OpRecorder observes the outcome of each store operation.
type OpRecorder interface {
	ObserveStoreOp(op string, err error)
}

// Options tunes a Service. Zero values get defaults.
type Options struct {
	ShareTTL   time.Duration    // 0 = shares never expire
	Now        func() time.Time // defaults to time.Now
	NewID      func() string    // history ids, defaults to UUID v4
	NewShareID func() string    // share ids, defaults to NewShareID
	Recorder   OpRecorder
}

// Service is the configuration-resolved store handle.
// With a nil backend it runs unconfigured: every operation fails fast with
// domain.ErrServiceUnavailable.
type Service struct {
	backend    Backend
	shareTTL   time.Duration
	now        func() time.Time
	newID      func() string
	newShareID func() string
	recorder   OpRecorder
}

// NewService builds the handle around backend (nil = unconfigured).
func NewService(backend Backend, opts Options) *Service {
	s := &Service{
		backend:    backend,
		shareTTL:   opts.ShareTTL,
		now:        opts.Now,
		newID:      opts.NewID,
		newShareID: opts.NewShareID,
		recorder:   opts.Recorder,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.newShareID == nil {
		s.newShareID = NewShareID
	}
	return s
}

// NewShareID returns 12 hex characters taken from a random UUID.
func NewShareID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:domain.ShareIDLength]
}

// Configured reports whether a backend is attached.
func (s *Service) Configured() bool {
	return s.backend != nil
}

// Backend returns the attached backend, or nil.
func (s *Service) Backend() Backend {
	return s.backend
}

// Ping checks the backend.
func (s *Service) Ping(ctx context.Context) error {
	if s.backend == nil {
		return domain.ErrServiceUnavailable
	}
	if err := s.backend.Ping(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

// ListHistory returns the most recent history items, newest first.
func (s *Service) ListHistory(ctx context.Context) (items []domain.HistoryItem, err error) {
	defer s.observe("list_history", &err)

	if s.backend == nil {
		return nil, domain.ErrServiceUnavailable
	}
	items, err = s.backend.ListHistory(ctx, domain.HistoryLimit)
	if err != nil {
		return nil, unavailable(err)
	}
	if items == nil {
		items = []domain.HistoryItem{}
	}
	return items, nil
}

// AppendHistory saves a snapshot of urls and the text that produced them.
func (s *Service) AppendHistory(ctx context.Context, urls []string, fullText string) (item domain.HistoryItem, err error) {
	defer s.observe("append_history", &err)

	if s.backend == nil {
		return domain.HistoryItem{}, domain.ErrServiceUnavailable
	}
	if len(urls) == 0 || fullText == "" {
		return domain.HistoryItem{}, domain.ErrInvalidPayload
	}

	item = domain.NewHistoryItem(s.newID(), s.now(), urls, fullText)
	if err := s.backend.InsertHistory(ctx, item, domain.HistoryLimit); err != nil {
		return domain.HistoryItem{}, unavailable(err)
	}
	return item, nil
}

// ClearHistory deletes every history item. Clearing an empty history succeeds.
func (s *Service) ClearHistory(ctx context.Context) (err error) {
	defer s.observe("clear_history", &err)

	if s.backend == nil {
		return domain.ErrServiceUnavailable
	}
	if err := s.backend.ClearHistory(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

// CreateShare stores urls verbatim and returns the new share id.
func (s *Service) CreateShare(ctx context.Context, urls []string) (id string, err error) {
	defer s.observe("create_share", &err)

	if s.backend == nil {
		return "", domain.ErrServiceUnavailable
	}
	if len(urls) == 0 {
		return "", domain.ErrInvalidPayload
	}

	stored := make([]string, len(urls))
	copy(stored, urls)

	for attempt := 0; attempt < shareIDAttempts; attempt++ {
		share := domain.Share{
			ID:        s.newShareID(),
			URLs:      stored,
			CreatedAt: s.now(),
		}
		err := s.backend.InsertShare(ctx, share)
		if err == nil {
			return share.ID, nil
		}
		if !errors.Is(err, ErrShareExists) {
			return "", unavailable(err)
		}
	}
	return "", unavailable(fmt.Errorf("no free share id after %d attempts", shareIDAttempts))
}

// ResolveShare returns the urls of share id, or domain.ErrNotFound.
func (s *Service) ResolveShare(ctx context.Context, id string) (urls []string, err error) {
	defer s.observe("resolve_share", &err)

	if s.backend == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if id == "" {
		return nil, domain.ErrNotFound
	}

	share, err := s.backend.GetShare(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable(err)
	}
	if share.Expired(s.now(), s.shareTTL) {
		return nil, domain.ErrNotFound
	}
	if share.URLs == nil {
		return []string{}, nil
	}
	return share.URLs, nil
}

// PurgeExpiredShares deletes shares older than the configured TTL.
// It is a no-op when shares never expire.
func (s *Service) PurgeExpiredShares(ctx context.Context) (n int, err error) {
	defer s.observe("purge_shares", &err)

	if s.backend == nil {
		return 0, domain.ErrServiceUnavailable
	}
	if s.shareTTL <= 0 {
		return 0, nil
	}
	n, err = s.backend.PurgeShares(ctx, s.now().Add(-s.shareTTL))
	if err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

// Close releases the backend.
func (s *Service) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func (s *Service) observe(op string, err *error) {
	if s.recorder != nil {
		s.recorder.ObserveStoreOp(op, *err)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
}
