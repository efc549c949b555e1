package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for history and shares
type Store struct {
	client   *redis.Client
	shareTTL time.Duration
}

// NewStore creates a new Redis store. A positive shareTTL is set as the
// expiry of every share key.
func NewStore(client *redis.Client, shareTTL time.Duration) *Store {
	return &Store{
		client:   client,
		shareTTL: shareTTL,
	}
}

func (s *Store) Name() string { return "redis" }

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
