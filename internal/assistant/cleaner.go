package assistant

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that evict idle sessions on demand.
// The Redis store relies on key TTLs instead and does not implement it.
type Sweeper interface {
	Sweep(ttl time.Duration) int
}

// Cleaner evicts idle conversation sessions on a schedule. Session state
// otherwise grows without bound, so deployments that use the in-memory store
// should run one.
type Cleaner struct {
	store    Sweeper
	log      *slog.Logger
	ttl      time.Duration
	interval time.Duration
}

// NewCleaner constructs a Cleaner instance.
func NewCleaner(store Sweeper, log *slog.Logger, ttl, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		store:    store,
		log:      log,
		ttl:      ttl,
		interval: interval,
	}
}

// Run starts the cleanup loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil || c.ttl <= 0 || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("session cleaner stopped", slog.Any("reason", ctx.Err()))
			return
		case <-ticker.C:
			if removed := c.store.Sweep(c.ttl); removed > 0 {
				c.log.Info("idle sessions evicted", slog.Int("count", removed))
			}
		}
	}
}
