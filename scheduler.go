package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"memtrack/internal/format"
)

// SchedulerState tracks where the refresh loop is in its cycle.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateRefreshing
	StatePublished
)

func (s SchedulerState) String() string {
	switch s {
	case StateRefreshing:
		return "refreshing"
	case StatePublished:
		return "published"
	default:
		return "idle"
	}
}

// flagKey identifies a process across refresh cycles. The start time guards
// against the OS reusing a pid for an unrelated process: a reused pid with a
// different start time counts as a new process.
type flagKey struct {
	pid           int32
	startedUnixMs int64
}

func flagKeyFor(s ProcessSample) flagKey {
	var started int64
	if !s.StartedAt.IsZero() {
		started = s.StartedAt.UnixMilli()
	}
	return flagKey{pid: s.PID, startedUnixMs: started}
}

// RefreshScheduler drives the refresh cycle on a fixed tick: refresh the
// cache, analyze the snapshot, publish the result to the delivery slot, and
// raise edge-triggered notifications for newly flagged processes. It never
// blocks on the presentation layer.
type RefreshScheduler struct {
	cache    *ProcessCache
	slot     *LatestSlot
	config   *ConfigStore
	notifier Notifier

	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	state   SchedulerState
	flagged map[flagKey]struct{}

	force chan struct{}
	done  chan struct{}
}

func NewRefreshScheduler(cache *ProcessCache, slot *LatestSlot, config *ConfigStore, notifier Notifier) *RefreshScheduler {
	cfg := config.Get()
	return &RefreshScheduler{
		cache:    cache,
		slot:     slot,
		config:   config,
		notifier: notifier,
		interval: cfg.RefreshInterval(),
		now:      time.Now,
		flagged:  make(map[flagKey]struct{}),
		force:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Run executes the refresh loop until ctx is cancelled. One cycle runs
// immediately so the presentation layer has data before the first tick.
func (s *RefreshScheduler) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Refresh scheduler started", "interval", format.FormatDuration(s.interval))
	s.runCycle(ctx, false)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Refresh scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx, false)
		case <-s.force:
			s.runCycle(ctx, true)
		}

		// A config reload may have changed the cadence.
		if next := s.config.Get().RefreshInterval(); next != s.interval {
			slog.Info("Refresh interval updated",
				"old", format.FormatDuration(s.interval),
				"new", format.FormatDuration(next))
			s.interval = next
			ticker.Reset(next)
		}
	}
}

// RequestRefresh asks for an immediate forced cycle. Never blocks; a request
// already pending is enough.
func (s *RefreshScheduler) RequestRefresh() {
	select {
	case s.force <- struct{}{}:
	default:
	}
}

// Done is closed once the loop has fully stopped.
func (s *RefreshScheduler) Done() <-chan struct{} {
	return s.done
}

func (s *RefreshScheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *RefreshScheduler) setState(st SchedulerState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// runCycle performs one REFRESHING -> PUBLISHED pass. A failed or timed-out
// refresh publishes nothing: the presentation keeps the last good result.
// Every blocking step, notification delivery included, runs under the cycle
// timeout so one hung sink cannot stall subsequent ticks.
func (s *RefreshScheduler) runCycle(ctx context.Context, forced bool) {
	s.setState(StateRefreshing)
	defer s.setState(StateIdle)

	cctx, cancel := context.WithTimeout(ctx, s.config.Get().RefreshTimeout())
	defer cancel()

	now := s.now()
	var snap Snapshot
	var err error
	if forced {
		snap, err = s.cache.ForceRefresh(cctx, now)
	} else {
		snap, err = s.cache.Refresh(cctx, now)
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("Refresh cycle failed, keeping last published result", "err", err)
		return
	}

	result := Analyze(snap, s.config.Get().Thresholds.Model())
	s.notifyNewlyFlagged(cctx, result)
	s.slot.Publish(result)
	s.setState(StatePublished)
}

// notifyNewlyFlagged fires one notification per transition into the flagged
// bucket. Edge state is keyed by (pid, start time) and pruned as soon as a
// process leaves the flagged set, so re-entering flags again. Transitions that
// happen while quiet hours are active (or flagged notifications are disabled)
// are still recorded and are never replayed once suppression lifts; only a
// fresh transition notifies.
func (s *RefreshScheduler) notifyNewlyFlagged(ctx context.Context, result AnalysisResult) {
	current := make(map[flagKey]struct{}, len(result.Flagged))
	var fresh []ClassifiedProcess

	s.mu.Lock()
	for _, cp := range result.Flagged {
		k := flagKeyFor(cp.Sample)
		current[k] = struct{}{}
		if _, seen := s.flagged[k]; !seen {
			fresh = append(fresh, cp)
		}
	}
	s.flagged = current
	s.mu.Unlock()

	if len(fresh) == 0 {
		return
	}

	cfg := s.config.Get()
	if !cfg.Notifications.FlaggedEnabled || cfg.QuietHours.Active(s.now()) {
		return
	}

	for _, cp := range fresh {
		body := fmt.Sprintf("%s (pid %d) is using %s of memory (%s).\n%s",
			cp.Sample.Name, cp.Sample.PID,
			format.FormatMB(cp.Sample.ResidentBytes),
			format.FormatPercent(cp.PercentOfTotal),
			cp.Recommendation)
		notifySafe(ctx, s.notifier, SeverityWarning, "High memory usage flagged", body)
	}
}
