package main

import (
	"fmt"
	"math"
)

// ErrConfigInvalid wraps hard configuration errors. A reload that fails
// validation keeps the previously loaded config.
type ErrConfigInvalid struct {
	Field  string
	Reason string
}

func (e *ErrConfigInvalid) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// validateConfig rejects values that cannot be clamped into something
// meaningful. Note: it deliberately does NOT require flagged thresholds to be
// stricter than highest-usage ones; that discipline belongs to the operator,
// and the analyzer ranks flagged above highest regardless.
func validateConfig(cfg *Config) error {
	rules := []struct {
		field string
		rule  ThresholdRule
	}{
		{"thresholds.highest_usage", cfg.Thresholds.HighestUsage},
		{"thresholds.flagged", cfg.Thresholds.Flagged},
	}
	for _, r := range rules {
		if r.rule.Percent < 0 || math.IsNaN(r.rule.Percent) || math.IsInf(r.rule.Percent, 0) {
			return &ErrConfigInvalid{r.field + ".percent", "must be a non-negative number"}
		}
		if r.rule.MinMB < 0 || math.IsNaN(r.rule.MinMB) || math.IsInf(r.rule.MinMB, 0) {
			return &ErrConfigInvalid{r.field + ".min_mb", "must be a non-negative number"}
		}
	}
	return nil
}

// sanitizeConfig clamps soft values to usable minimums. Returns true when
// anything was adjusted.
func sanitizeConfig(cfg *Config) bool {
	changed := false

	if cfg.Intervals.RefreshSeconds < 1 {
		cfg.Intervals.RefreshSeconds = 15
		changed = true
	}
	if cfg.Intervals.CacheTTLSeconds < 1 {
		cfg.Intervals.CacheTTLSeconds = 15
		changed = true
	}
	if cfg.Intervals.RefreshTimeoutSeconds < 1 {
		cfg.Intervals.RefreshTimeoutSeconds = 10
		changed = true
	}
	// A timeout longer than the tick would let one hung cycle overlap the next.
	if cfg.Intervals.RefreshTimeoutSeconds > cfg.Intervals.RefreshSeconds {
		cfg.Intervals.RefreshTimeoutSeconds = cfg.Intervals.RefreshSeconds
		changed = true
	}

	if cfg.QuietHours.StartHour < 0 || cfg.QuietHours.StartHour > 23 ||
		cfg.QuietHours.StartMinute < 0 || cfg.QuietHours.StartMinute > 59 ||
		cfg.QuietHours.EndHour < 0 || cfg.QuietHours.EndHour > 23 ||
		cfg.QuietHours.EndMinute < 0 || cfg.QuietHours.EndMinute > 59 {
		cfg.QuietHours = defaultConfigTemplate().QuietHours
		changed = true
	}

	if cfg.Telegram.Enabled && cfg.Telegram.BotToken == "" {
		cfg.Telegram.Enabled = false
		changed = true
	}

	return changed
}
