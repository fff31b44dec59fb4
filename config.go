package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shirou/gopsutil/v3/mem"
)

const defaultConfigFile = "config.json"

func configPath() string {
	if p := os.Getenv("MEMTRACK_CONFIG"); p != "" {
		return p
	}
	return defaultConfigFile
}

// loadOrCreateConfig reads the config file, creating it with machine-scaled
// defaults on first run. Missing fields in an existing file are filled from
// the defaults and written back, so config files survive upgrades.
func loadOrCreateConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return createDefaultConfig(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(data, &configMap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if fillMissingConfigFields(configMap) {
		if upgraded, err := json.MarshalIndent(configMap, "", "  "); err == nil {
			if err := os.WriteFile(path, upgraded, 0644); err != nil {
				slog.Warn("Could not write upgraded config", "path", path, "err", err)
			} else {
				slog.Info("Config upgraded with missing defaults", "path", path)
			}
		}
	}

	merged, err := json.Marshal(configMap)
	if err != nil {
		return nil, fmt.Errorf("merge config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if sanitizeConfig(&cfg) {
		slog.Warn("Config values were clamped to usable ranges", "path", path)
	}
	return &cfg, nil
}

func createDefaultConfig(path string) (*Config, error) {
	cfg := defaultConfigTemplate()
	if vm, err := mem.VirtualMemory(); err == nil {
		cfg.Thresholds = deriveThresholdRules(vm.Total)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("Default config created", "path", path)
	return &cfg, nil
}
