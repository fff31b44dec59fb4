package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheRefreshIdempotentWithinInterval(t *testing.T) {
	sampler := &fakeSampler{snap: snapOf(1_000_000_000, proc(1, "a", mb(100)))}
	cache := NewProcessCache(sampler, 15*time.Second)

	now := testStart
	if _, err := cache.Refresh(context.Background(), now); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if _, err := cache.Refresh(context.Background(), now); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}

	if got := sampler.sampleCalls(); got != 1 {
		t.Fatalf("expected exactly 1 sample call, got %d", got)
	}
}

func TestCacheRefreshCadence(t *testing.T) {
	sampler := &fakeSampler{snap: snapOf(1_000_000_000, proc(1, "a", mb(100)))}
	cache := NewProcessCache(sampler, 15*time.Second)

	// t=0 samples, t=5s cached, t=16s samples again.
	for _, offset := range []time.Duration{0, 5 * time.Second, 16 * time.Second} {
		if _, err := cache.Refresh(context.Background(), testStart.Add(offset)); err != nil {
			t.Fatalf("refresh at +%v failed: %v", offset, err)
		}
	}

	if got := sampler.sampleCalls(); got != 2 {
		t.Fatalf("expected exactly 2 sample calls across the window, got %d", got)
	}
}

func TestCacheCurrentBeforeFirstRefresh(t *testing.T) {
	cache := NewProcessCache(&fakeSampler{}, 15*time.Second)

	if _, err := cache.Current(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestCacheFailureRetainsPreviousSnapshot(t *testing.T) {
	good := snapOf(1_000_000_000, proc(1, "a", mb(100)))
	sampler := &fakeSampler{snap: good}
	cache := NewProcessCache(sampler, 15*time.Second)

	if _, err := cache.Refresh(context.Background(), testStart); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	sampler.set(Snapshot{}, errors.New("permission denied"))
	if _, err := cache.Refresh(context.Background(), testStart.Add(20*time.Second)); err == nil {
		t.Fatalf("expected refresh failure to surface")
	}

	stored, err := cache.Current()
	if err != nil {
		t.Fatalf("current failed after sampler error: %v", err)
	}
	if len(stored.Samples) != 1 || stored.Samples[0].PID != 1 {
		t.Fatalf("previous snapshot was not retained: %+v", stored)
	}

	// The clock was not advanced by the failure, so the next call retries.
	sampler.set(snapOf(1_000_000_000, proc(2, "b", mb(50))), nil)
	fresh, err := cache.Refresh(context.Background(), testStart.Add(21*time.Second))
	if err != nil {
		t.Fatalf("retry refresh failed: %v", err)
	}
	if fresh.Samples[0].PID != 2 {
		t.Fatalf("expected replacement snapshot after retry")
	}
}

func TestCacheSetIntervalTakesEffect(t *testing.T) {
	sampler := &fakeSampler{snap: snapOf(1_000_000_000, proc(1, "a", mb(100)))}
	cache := NewProcessCache(sampler, time.Hour)

	if _, err := cache.Refresh(context.Background(), testStart); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := cache.Refresh(context.Background(), testStart.Add(time.Minute)); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got := sampler.sampleCalls(); got != 1 {
		t.Fatalf("expected the hour interval to hold, got %d calls", got)
	}

	// A shorter interval applies to the very next refresh.
	cache.SetInterval(30 * time.Second)
	if _, err := cache.Refresh(context.Background(), testStart.Add(2*time.Minute)); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got := sampler.sampleCalls(); got != 2 {
		t.Fatalf("expected the new interval to trigger a sample, got %d calls", got)
	}
}

func TestCacheForceRefreshResetsClock(t *testing.T) {
	sampler := &fakeSampler{snap: snapOf(1_000_000_000, proc(1, "a", mb(100)))}
	cache := NewProcessCache(sampler, 15*time.Second)

	if _, err := cache.Refresh(context.Background(), testStart); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := cache.ForceRefresh(context.Background(), testStart.Add(5*time.Second)); err != nil {
		t.Fatalf("force refresh failed: %v", err)
	}
	// 10s after the force, still within the reset interval: served from cache.
	if _, err := cache.Refresh(context.Background(), testStart.Add(15*time.Second)); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if got := sampler.sampleCalls(); got != 2 {
		t.Fatalf("expected 2 sample calls, got %d", got)
	}
}
