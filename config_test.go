package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateConfigRejectsNegativeThreshold(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.Thresholds.Flagged.Percent = -5

	var invalid *ErrConfigInvalid
	if err := validateConfig(&cfg); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestValidateConfigRejectsNaN(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.Thresholds.HighestUsage.MinMB = math.NaN()

	if err := validateConfig(&cfg); err == nil {
		t.Fatalf("expected NaN to be rejected")
	}
}

func TestSanitizeClampsIntervals(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.Intervals.RefreshSeconds = 0
	cfg.Intervals.CacheTTLSeconds = -3

	if !sanitizeConfig(&cfg) {
		t.Fatalf("expected sanitize to report changes")
	}
	if cfg.Intervals.RefreshSeconds != 15 || cfg.Intervals.CacheTTLSeconds != 15 {
		t.Fatalf("intervals not clamped: %+v", cfg.Intervals)
	}
}

func TestSanitizeCapsTimeoutAtInterval(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.Intervals.RefreshSeconds = 5
	cfg.Intervals.RefreshTimeoutSeconds = 30

	sanitizeConfig(&cfg)

	if cfg.Intervals.RefreshTimeoutSeconds != 5 {
		t.Fatalf("timeout must not exceed the refresh interval, got %d", cfg.Intervals.RefreshTimeoutSeconds)
	}
}

func TestSanitizeResetsBadQuietHours(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.QuietHours.StartHour = 31

	sanitizeConfig(&cfg)

	want := defaultConfigTemplate().QuietHours
	if cfg.QuietHours != want {
		t.Fatalf("expected quiet hours reset to defaults, got %+v", cfg.QuietHours)
	}
}

func TestSanitizeDisablesTelegramWithoutToken(t *testing.T) {
	cfg := defaultConfigTemplate()
	cfg.Telegram.Enabled = true
	cfg.Telegram.BotToken = ""

	sanitizeConfig(&cfg)

	if cfg.Telegram.Enabled {
		t.Fatalf("telegram without a token must be disabled")
	}
}

func TestDeriveThresholdRulesScalesWithMemory(t *testing.T) {
	// 64 GB machine: 2% = ~1310 MB, 15% = ~9830 MB, both above the floors.
	rules := deriveThresholdRules(64 << 30)
	if rules.HighestUsage.MinMB <= 200 {
		t.Fatalf("expected highest floor to scale past 200 MB, got %v", rules.HighestUsage.MinMB)
	}
	if rules.Flagged.MinMB <= 1500 {
		t.Fatalf("expected flagged floor to scale past 1500 MB, got %v", rules.Flagged.MinMB)
	}

	// 4 GB machine: 2% = ~82 MB and 15% = ~614 MB, so the floors win.
	rules = deriveThresholdRules(4 << 30)
	if rules.HighestUsage.MinMB != 200 || rules.Flagged.MinMB != 1500 {
		t.Fatalf("expected floors on a small machine, got %+v", rules)
	}
}

func TestQuietHoursOvernightWindow(t *testing.T) {
	q := QuietHoursConfig{Enabled: true, StartHour: 23, StartMinute: 30, EndHour: 7, EndMinute: 0}

	cases := []struct {
		hour, min int
		want      bool
	}{
		{23, 45, true},
		{2, 0, true},
		{6, 59, true},
		{7, 0, false},
		{12, 0, false},
		{23, 29, false},
	}
	for _, tc := range cases {
		at := time.Date(2025, 3, 10, tc.hour, tc.min, 0, 0, time.UTC)
		if got := q.Active(at); got != tc.want {
			t.Fatalf("Active(%02d:%02d) = %v, want %v", tc.hour, tc.min, got, tc.want)
		}
	}

	q.Enabled = false
	if q.Active(time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)) {
		t.Fatalf("disabled quiet hours must never be active")
	}
}

func TestLoadConfigFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	// A partial file from an older version: only thresholds present.
	partial := `{"thresholds": {"highest_usage": {"percent": 3, "min_mb": 512}}}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := loadOrCreateConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Thresholds.HighestUsage.Percent != 3 || cfg.Thresholds.HighestUsage.MinMB != 512 {
		t.Fatalf("user values must survive the merge, got %+v", cfg.Thresholds.HighestUsage)
	}
	if cfg.Thresholds.Flagged.MinMB != 1500 {
		t.Fatalf("missing fields must come from defaults, got %+v", cfg.Thresholds.Flagged)
	}
	if cfg.Intervals.RefreshSeconds != 15 {
		t.Fatalf("missing sections must come from defaults, got %+v", cfg.Intervals)
	}

	// The upgraded file is written back with the filled-in fields.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read upgraded file: %v", err)
	}
	var onDisk map[string]interface{}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("upgraded file is not valid JSON: %v", err)
	}
	if _, ok := onDisk["intervals"]; !ok {
		t.Fatalf("upgraded file missing filled section: %s", data)
	}
}

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadOrCreateConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Intervals.RefreshSeconds != 15 {
		t.Fatalf("expected default intervals, got %+v", cfg.Intervals)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the default file to be written: %v", err)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	bad := `{"thresholds": {"flagged": {"percent": -1, "min_mb": 100}}}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := loadOrCreateConfig(path); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestLoadConfigRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := loadOrCreateConfig(path); err == nil {
		t.Fatalf("expected parse failure")
	}
}
