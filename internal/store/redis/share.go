package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
)

// shareRecord is the stored form of a share
type shareRecord struct {
	URLs      domain.StringList `json:"urls"`
	CreatedAt int64             `json:"createdAt"` // ms since epoch
}

// InsertShare stores a share, refusing to overwrite an existing id
func (s *Store) InsertShare(ctx context.Context, share domain.Share) error {
	data, err := json.Marshal(shareRecord{URLs: share.URLs, CreatedAt: share.CreatedAt.UnixMilli()})
	if err != nil {
		return fmt.Errorf("failed to marshal share: %w", err)
	}

	ok, err := s.client.SetNX(ctx, ShareKey(share.ID), data, s.shareTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to save share: %w", err)
	}
	if !ok {
		return store.ErrShareExists
	}
	return nil
}

// GetShare retrieves a share from Redis by ID
func (s *Store) GetShare(ctx context.Context, id string) (*domain.Share, error) {
	data, err := s.client.Get(ctx, ShareKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	var rec shareRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt record resolves to an empty list rather than an error
		rec = shareRecord{}
	}
	if rec.URLs == nil {
		rec.URLs = domain.StringList{}
	}

	return &domain.Share{
		ID:        id,
		URLs:      []string(rec.URLs),
		CreatedAt: time.UnixMilli(rec.CreatedAt),
	}, nil
}

// PurgeShares removes shares created before the cutoff
func (s *Store) PurgeShares(ctx context.Context, before time.Time) (int, error) {
	cutoff := before.UnixMilli()
	removed := 0

	iter := s.client.Scan(ctx, 0, KeyPrefixShare+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, err := ExtractShareID(key); err != nil {
			continue
		}

		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired meanwhile
			}
			return removed, fmt.Errorf("failed to read share %s: %w", key, err)
		}

		var rec shareRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.CreatedAt >= cutoff {
			continue
		}

		if err := s.client.Del(ctx, key).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete share %s: %w", key, err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan shares: %w", err)
	}

	return removed, nil
}
