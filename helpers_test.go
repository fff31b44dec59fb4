package main

import (
	"context"
	"sync"
	"time"

	"memtrack/internal/model"
)

var testStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeSampler counts calls and serves a canned snapshot or error.
type fakeSampler struct {
	mu    sync.Mutex
	calls int
	snap  Snapshot
	err   error
}

func (f *fakeSampler) Sample(context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return Snapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeSampler) set(snap Snapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
	f.err = err
}

func (f *fakeSampler) sampleCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type sentNote struct {
	sev   Severity
	title string
	body  string
}

// fakeNotifier records deliveries and can be made to fail.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNote
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, sev Severity, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNote{sev: sev, title: title, body: body})
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func mb(n float64) uint64 {
	return uint64(n * 1024 * 1024)
}

func proc(pid int32, name string, rss uint64) ProcessSample {
	return model.ProcessSample{
		PID:           pid,
		Name:          name,
		ResidentBytes: rss,
		StartedAt:     testStart,
	}
}

func snapOf(total uint64, samples ...ProcessSample) Snapshot {
	return model.Snapshot{
		CapturedAt:       testStart,
		TotalSystemBytes: total,
		Samples:          samples,
	}
}

// testThresholds mirrors the documented defaults: highest 2% or 200 MB,
// flagged 15% or 1500 MB.
func testThresholds() ThresholdConfig {
	return model.ThresholdConfig{
		HighestUsagePercent:  2,
		HighestUsageMinBytes: mb(200),
		FlaggedPercent:       15,
		FlaggedMinBytes:      mb(1500),
	}
}

func testConfig() *Config {
	cfg := defaultConfigTemplate()
	cfg.QuietHours.Enabled = false
	cfg.Notifications.Desktop.Enabled = false
	return &cfg
}
