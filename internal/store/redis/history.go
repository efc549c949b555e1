package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
)

// ListHistory returns up to limit items, newest first
func (s *Store) ListHistory(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	members, err := s.client.ZRevRange(ctx, HistoryKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	items := make([]domain.HistoryItem, 0, len(members))
	for _, m := range members {
		var item domain.HistoryItem
		if err := json.Unmarshal([]byte(m), &item); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		if item.Preview == nil {
			item.Preview = []string{}
		}
		items = append(items, item)
	}

	return items, nil
}

// InsertHistory adds item and trims the set to the keep most recent entries
func (s *Store) InsertHistory(ctx context.Context, item domain.HistoryItem, keep int) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal history item: %w", err)
	}

	if err := s.client.ZAdd(ctx, HistoryKey(), redis.Z{
		Score:  float64(item.Timestamp),
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("failed to save history item: %w", err)
	}

	if keep > 0 {
		// Trim is best effort: the insert already succeeded
		_ = s.client.ZRemRangeByRank(ctx, HistoryKey(), 0, int64(-(keep + 1))).Err()
	}

	return nil
}

// ClearHistory deletes every history item
func (s *Store) ClearHistory(ctx context.Context) error {
	if err := s.client.Del(ctx, HistoryKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
