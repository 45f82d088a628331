package macro

import (
	"context"
	"sync"

	"github.com/mas6446/ai-adjutant-system/internal/model"
)

// Cache holds the most recent macro snapshot between analysis requests.
// It is a singleton entity with explicit invalidation: the dashboard's
// refresh action (or the optional scheduler) replaces the snapshot, and
// analysis requests read whatever is current without re-fetching.
type Cache struct {
	mu        sync.RWMutex
	collector *Collector
	snap      *model.MacroSnapshot
}

// NewCache wraps a collector with snapshot caching.
func NewCache(c *Collector) *Cache {
	return &Cache{collector: c}
}

// Get returns the cached snapshot, if any.
func (c *Cache) Get() (model.MacroSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return model.MacroSnapshot{}, false
	}
	return *c.snap, true
}

// Refresh invalidates the cache and runs a full collection cycle.
func (c *Cache) Refresh(ctx context.Context, ov *Overrides) model.MacroSnapshot {
	snap := c.collector.Collect(ctx, ov)
	c.mu.Lock()
	c.snap = &snap
	c.mu.Unlock()
	return snap
}

// Current returns the cached snapshot, collecting one first if none exists.
func (c *Cache) Current(ctx context.Context, ov *Overrides) model.MacroSnapshot {
	if ov == nil {
		if snap, ok := c.Get(); ok {
			return snap
		}
	}
	// Overrides change the evaluation, so they always force a fresh cycle.
	return c.Refresh(ctx, ov)
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
