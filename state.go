package main

import (
	"encoding/json"
	"log/slog"
	"os"
)

const defaultStateFile = "memtrack_state.json"

func statePath() string {
	if p := os.Getenv("MEMTRACK_STATE_FILE"); p != "" {
		return p
	}
	return defaultStateFile
}

// UserSettings holds operator overrides made at runtime (threshold
// adjustments from the TUI). They survive restarts and win over config.json.
type UserSettings struct {
	HighestMinMB float64 `json:"highest_min_mb"`
	FlaggedMinMB float64 `json:"flagged_min_mb"`
}

func loadSettings(path string) UserSettings {
	var s UserSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("Could not parse saved settings", "path", path, "err", err)
		return UserSettings{}
	}
	return s
}

func saveSettings(path string, s UserSettings) {
	data, err := json.Marshal(s)
	if err != nil {
		slog.Warn("Could not serialize settings", "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Warn("Could not save settings", "path", path, "err", err)
	}
}

// applyTo overlays the saved overrides onto a config copy. Zero values mean
// "no override recorded".
func (s UserSettings) applyTo(cfg *Config) {
	if s.HighestMinMB > 0 {
		cfg.Thresholds.HighestUsage.MinMB = s.HighestMinMB
	}
	if s.FlaggedMinMB > 0 {
		cfg.Thresholds.Flagged.MinMB = s.FlaggedMinMB
	}
}
