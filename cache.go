package main

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotInitialized is returned by Current before the first refresh.
var ErrNotInitialized = errors.New("process cache not initialized")

// ProcessCache owns the most recent snapshot and its refresh clock. It makes
// at most one sampling call per interval no matter how many callers invoke
// Refresh; a failed sample keeps the previous snapshot and the previous clock
// so the next call retries.
type ProcessCache struct {
	mu          sync.Mutex
	sampler     Sampler
	interval    time.Duration
	snap        Snapshot
	ready       bool
	lastRefresh time.Time
}

func NewProcessCache(sampler Sampler, interval time.Duration) *ProcessCache {
	return &ProcessCache{sampler: sampler, interval: interval}
}

// SetInterval replaces the staleness interval, applied from the next Refresh.
func (c *ProcessCache) SetInterval(interval time.Duration) {
	c.mu.Lock()
	c.interval = interval
	c.mu.Unlock()
}

// Refresh returns the stored snapshot, sampling first when the stored one is
// older than the interval or absent. Callers serialize on the cache mutex, so
// two concurrent calls within one interval still produce a single sample.
func (c *ProcessCache) Refresh(ctx context.Context, now time.Time) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready && now.Sub(c.lastRefresh) < c.interval {
		return c.snap, nil
	}
	return c.sampleLocked(ctx, now)
}

// ForceRefresh bypasses the interval check and always samples, resetting the
// interval clock from this point.
func (c *ProcessCache) ForceRefresh(ctx context.Context, now time.Time) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleLocked(ctx, now)
}

// Current returns the stored snapshot without sampling.
func (c *ProcessCache) Current() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return Snapshot{}, ErrNotInitialized
	}
	return c.snap, nil
}

func (c *ProcessCache) sampleLocked(ctx context.Context, now time.Time) (Snapshot, error) {
	snap, err := c.sampler.Sample(ctx)
	if err != nil {
		// Previous snapshot and clock stay untouched: stale but valid.
		return Snapshot{}, err
	}
	c.snap = snap
	c.ready = true
	c.lastRefresh = now
	return snap, nil
}
