// Package storetest holds the behavior every store.Backend must share.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/store"
)

// Run exercises a backend. newBackend must return an empty backend each call.
func Run(t *testing.T, newBackend func(t *testing.T) store.Backend) {
	t.Helper()

	t.Run("history newest first and trimmed", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)
		base := time.UnixMilli(1_700_000_000_000)

		for i := 0; i < 5; i++ {
			item := domain.NewHistoryItem(fmt.Sprintf("h%d", i), base.Add(time.Duration(i)*time.Second),
				[]string{fmt.Sprintf("https://e.com/%d", i)}, "text")
			require.NoError(t, b.InsertHistory(ctx, item, 3))
		}

		items, err := b.ListHistory(ctx, 20)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "h4", items[0].ID)
		assert.Equal(t, "h3", items[1].ID)
		assert.Equal(t, "h2", items[2].ID)
		assert.Equal(t, []string{"https://e.com/4"}, items[0].Preview)
		assert.Equal(t, 1, items[0].URLCount)
		assert.Equal(t, "text", items[0].FullText)
		assert.Equal(t, base.Add(4*time.Second).UnixMilli(), items[0].Timestamp)
	})

	t.Run("history limit", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)
		base := time.UnixMilli(1_700_000_000_000)

		for i := 0; i < 4; i++ {
			item := domain.NewHistoryItem(fmt.Sprintf("h%d", i), base.Add(time.Duration(i)*time.Second), []string{"a"}, "a")
			require.NoError(t, b.InsertHistory(ctx, item, 20))
		}

		items, err := b.ListHistory(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("clear history", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)

		require.NoError(t, b.ClearHistory(ctx))
		require.NoError(t, b.InsertHistory(ctx, domain.NewHistoryItem("h", time.Now(), []string{"a"}, "a"), 20))
		require.NoError(t, b.ClearHistory(ctx))

		items, err := b.ListHistory(ctx, 20)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("share round trip", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)
		created := time.UnixMilli(1_700_000_000_000)

		share := domain.Share{ID: "0123456789ab", URLs: []string{"https://x.com", "https://x.com", "junk"}, CreatedAt: created}
		require.NoError(t, b.InsertShare(ctx, share))
		assert.ErrorIs(t, b.InsertShare(ctx, share), store.ErrShareExists)

		got, err := b.GetShare(ctx, share.ID)
		require.NoError(t, err)
		assert.Equal(t, share.ID, got.ID)
		assert.Equal(t, share.URLs, got.URLs)
		assert.Equal(t, created.UnixMilli(), got.CreatedAt.UnixMilli())
	})

	t.Run("unknown share", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.GetShare(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("purge shares", func(t *testing.T) {
		ctx := context.Background()
		b := newBackend(t)
		now := time.UnixMilli(1_700_000_000_000)

		require.NoError(t, b.InsertShare(ctx, domain.Share{ID: "old000000000", URLs: []string{"a"}, CreatedAt: now.Add(-2 * time.Hour)}))
		require.NoError(t, b.InsertShare(ctx, domain.Share{ID: "new000000000", URLs: []string{"b"}, CreatedAt: now}))

		n, err := b.PurgeShares(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = b.GetShare(ctx, "old000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = b.GetShare(ctx, "new000000000")
		assert.NoError(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newBackend(t).Ping(context.Background()))
	})
}
