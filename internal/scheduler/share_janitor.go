package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkbatch/internal/logger"
)

// DefaultJanitorInterval is used when no interval is configured
const DefaultJanitorInterval = time.Hour

// SharePurger deletes shares past their retention
type SharePurger interface {
	PurgeExpiredShares(ctx context.Context) (int, error)
}

// ShareJanitor periodically removes expired shares
type ShareJanitor struct {
	purger   SharePurger
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewShareJanitor creates a new share janitor
func NewShareJanitor(purger SharePurger, log logger.Logger, interval time.Duration) *ShareJanitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}

	return &ShareJanitor{
		purger:   purger,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs a purge immediately, then once per interval until Stop or ctx ends
func (j *ShareJanitor) Start(ctx context.Context) {
	if _, err := j.Purge(ctx); err != nil {
		j.logger.Warn("initial share purge failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := j.Purge(ctx); err != nil {
					j.logger.Error("share purge failed",
						logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor. It is safe to call more than once.
func (j *ShareJanitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
}

// Purge runs one pass and returns the number of shares removed
func (j *ShareJanitor) Purge(ctx context.Context) (int, error) {
	n, err := j.purger.PurgeExpiredShares(ctx)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		j.logger.Info("expired shares purged",
			logger.Int("deleted", n))
	} else {
		j.logger.Debug("no expired shares to purge")
	}

	return n, nil
}
