package main

import "encoding/json"

func defaultConfigTemplate() Config {
	return Config{
		Thresholds: ThresholdsConfig{
			HighestUsage: ThresholdRule{Percent: 2, MinMB: 200},
			Flagged:      ThresholdRule{Percent: 15, MinMB: 1500},
		},
		Intervals: IntervalsConfig{
			RefreshSeconds:        15,
			CacheTTLSeconds:       15,
			RefreshTimeoutSeconds: 10,
		},
		Notifications: NotificationsConfig{
			FlaggedEnabled: true,
			Desktop:        DesktopNotifyConfig{Enabled: true},
		},
		QuietHours: QuietHoursConfig{Enabled: false, StartHour: 23, StartMinute: 30, EndHour: 7, EndMinute: 0},
		Telegram:   TelegramConfig{Enabled: false},
	}
}

// deriveThresholdRules scales the default size thresholds to the machine:
// highest = max(200 MB, 2% of total), flagged = max(1500 MB, 15% of total).
// Used once, when a fresh config file is created.
func deriveThresholdRules(totalBytes uint64) ThresholdsConfig {
	totalMB := float64(totalBytes) / 1024 / 1024

	highestMB := totalMB * 0.02
	if highestMB < 200 {
		highestMB = 200
	}
	flaggedMB := totalMB * 0.15
	if flaggedMB < 1500 {
		flaggedMB = 1500
	}

	return ThresholdsConfig{
		HighestUsage: ThresholdRule{Percent: 2, MinMB: highestMB},
		Flagged:      ThresholdRule{Percent: 15, MinMB: flaggedMB},
	}
}

func fillMissingConfigFields(configMap map[string]interface{}) bool {
	defaults := defaultConfigTemplate()
	defaultBytes, err := json.Marshal(defaults)
	if err != nil {
		return false
	}
	var defaultMap map[string]interface{}
	if err := json.Unmarshal(defaultBytes, &defaultMap); err != nil {
		return false
	}
	return fillMissingMap(configMap, defaultMap)
}

func fillMissingMap(configMap, defaultMap map[string]interface{}) bool {
	changed := false
	for key, defaultValue := range defaultMap {
		currentValue, exists := configMap[key]
		if !exists || currentValue == nil {
			configMap[key] = defaultValue
			changed = true
			continue
		}

		currentMap, currentIsMap := currentValue.(map[string]interface{})
		defaultSubMap, defaultIsMap := defaultValue.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if fillMissingMap(currentMap, defaultSubMap) {
				changed = true
			}
		}
	}
	return changed
}
