package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"memtrack/internal/model"
)

// ConfigStore holds the active config as an immutable handle swapped
// wholesale, so an in-flight analysis always sees one consistent config.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewConfigStore(cfg *Config) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

func (s *ConfigStore) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *ConfigStore) Set(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// AppContext wires the application components together. It is also the
// backend the TUI talks to.
type AppContext struct {
	Config     *ConfigStore
	Cache      *ProcessCache
	Slot       *LatestSlot
	Scheduler  *RefreshScheduler
	Controller *ProcessController
	Notifier   Notifier

	configPath string
	statePath  string

	settingsMu sync.Mutex
	settings   UserSettings
}

// InitApp builds the application context from a validated config.
func InitApp(cfg *Config, configPath string) *AppContext {
	settings := loadSettings(statePath())
	settings.applyTo(cfg)

	store := NewConfigStore(cfg)
	cache := NewProcessCache(NewSystemSampler(), cfg.CacheTTL())
	slot := NewLatestSlot()
	notifier := buildNotifier(cfg)

	return &AppContext{
		Config:     store,
		Cache:      cache,
		Slot:       slot,
		Scheduler:  NewRefreshScheduler(cache, slot, store, notifier),
		Controller: NewProcessController(),
		Notifier:   notifier,
		configPath: configPath,
		statePath:  statePath(),
		settings:   settings,
	}
}

// TryTakeLatest consumes the freshest unread analysis result, if any.
func (a *AppContext) TryTakeLatest() (model.AnalysisResult, bool) {
	return a.Slot.TryTake()
}

// LatestResult returns the last published result without consuming it.
func (a *AppContext) LatestResult() (model.AnalysisResult, bool) {
	return a.Slot.Peek()
}

// ForceRefresh requests an immediate refresh cycle. Never blocks.
func (a *AppContext) ForceRefresh() {
	a.Scheduler.RequestRefresh()
}

// TerminateProcess terminates by pid, bounded by its own timeout so a hung
// terminate never stalls the caller indefinitely.
func (a *AppContext) TerminateProcess(pid int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.Controller.Terminate(ctx, pid)
}

// RevealProcess opens the directory containing the executable.
func (a *AppContext) RevealProcess(exePath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.Controller.RevealInFileBrowser(ctx, exePath)
}

// AdjustHighestMinMB shifts the highest-usage size threshold and persists the
// override. Returns the new value.
func (a *AppContext) AdjustHighestMinMB(deltaMB float64) float64 {
	return a.adjustThreshold(deltaMB, false)
}

// AdjustFlaggedMinMB shifts the flagged size threshold and persists the
// override. Returns the new value.
func (a *AppContext) AdjustFlaggedMinMB(deltaMB float64) float64 {
	return a.adjustThreshold(deltaMB, true)
}

func (a *AppContext) adjustThreshold(deltaMB float64, flagged bool) float64 {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()

	next := *a.Config.Get() // copy, the stored config stays immutable
	var value float64
	if flagged {
		value = clampMB(next.Thresholds.Flagged.MinMB + deltaMB)
		next.Thresholds.Flagged.MinMB = value
		a.settings.FlaggedMinMB = value
	} else {
		value = clampMB(next.Thresholds.HighestUsage.MinMB + deltaMB)
		next.Thresholds.HighestUsage.MinMB = value
		a.settings.HighestMinMB = value
	}
	a.Config.Set(&next)
	saveSettings(a.statePath, a.settings)
	return value
}

func clampMB(mb float64) float64 {
	if mb < 1 {
		return 1
	}
	return mb
}

// ReloadConfig re-reads config.json and swaps it in. The file wins over any
// runtime threshold overrides, which are cleared. An invalid file keeps the
// previous config.
func (a *AppContext) ReloadConfig() error {
	cfg, err := loadOrCreateConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	a.settingsMu.Lock()
	a.settings = UserSettings{}
	saveSettings(a.statePath, a.settings)
	a.settingsMu.Unlock()

	a.Config.Set(cfg)
	// The scheduler re-reads its interval and timeout from the store; the
	// cache holds its interval directly, so push the new value.
	a.Cache.SetInterval(cfg.CacheTTL())
	return nil
}
