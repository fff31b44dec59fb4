package main

import (
	"time"

	"memtrack/internal/model"
)

// Config is loaded from config.json. It is treated as an immutable value:
// reloads and runtime adjustments swap the whole struct through the
// ConfigStore, never mutate it field by field.
type Config struct {
	Thresholds    ThresholdsConfig    `json:"thresholds"`
	Intervals     IntervalsConfig     `json:"intervals"`
	Notifications NotificationsConfig `json:"notifications"`
	QuietHours    QuietHoursConfig    `json:"quiet_hours"`
	Telegram      TelegramConfig      `json:"telegram"`
}

type ThresholdsConfig struct {
	HighestUsage ThresholdRule `json:"highest_usage"`
	Flagged      ThresholdRule `json:"flagged"`
}

// ThresholdRule qualifies a process when its percent of total OR its absolute
// size crosses the rule. Sizes are configured in MB (operator-friendly).
type ThresholdRule struct {
	Percent float64 `json:"percent"`
	MinMB   float64 `json:"min_mb"`
}

type IntervalsConfig struct {
	RefreshSeconds        int `json:"refresh_seconds"`
	CacheTTLSeconds       int `json:"cache_ttl_seconds"`
	RefreshTimeoutSeconds int `json:"refresh_timeout_seconds"`
}

type NotificationsConfig struct {
	FlaggedEnabled bool                `json:"flagged_enabled"`
	Desktop        DesktopNotifyConfig `json:"desktop"`
}

type DesktopNotifyConfig struct {
	Enabled bool `json:"enabled"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

type QuietHoursConfig struct {
	Enabled     bool `json:"enabled"`
	StartHour   int  `json:"start_hour"`
	StartMinute int  `json:"start_minute"`
	EndHour     int  `json:"end_hour"`
	EndMinute   int  `json:"end_minute"`
}

// Model converts the MB-based rules into the byte-based analyzer thresholds.
func (t ThresholdsConfig) Model() ThresholdConfig {
	return model.ThresholdConfig{
		HighestUsagePercent:  t.HighestUsage.Percent,
		HighestUsageMinBytes: mbToBytes(t.HighestUsage.MinMB),
		FlaggedPercent:       t.Flagged.Percent,
		FlaggedMinBytes:      mbToBytes(t.Flagged.MinMB),
	}
}

func mbToBytes(mb float64) uint64 {
	if mb <= 0 {
		return 0
	}
	return uint64(mb * 1024 * 1024)
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Intervals.RefreshSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Intervals.CacheTTLSeconds) * time.Second
}

func (c *Config) RefreshTimeout() time.Duration {
	return time.Duration(c.Intervals.RefreshTimeoutSeconds) * time.Second
}

// Active reports whether t falls inside the quiet-hours window, handling
// overnight windows (e.g. 23:30 - 07:00).
func (q QuietHoursConfig) Active(t time.Time) bool {
	if !q.Enabled {
		return false
	}

	currentMins := t.Hour()*60 + t.Minute()
	startMins := q.StartHour*60 + q.StartMinute
	endMins := q.EndHour*60 + q.EndMinute

	if startMins > endMins {
		return currentMins >= startMins || currentMins < endMins
	}
	return currentMins >= startMins && currentMins < endMins
}
