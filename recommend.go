package main

import (
	"strings"

	"memtrack/internal/model"
)

// appCategory groups applications whose memory pressure has a common remedy.
type appCategory struct {
	keywords []string
	advice   string
}

var appCategories = []appCategory{
	{[]string{"chrome", "chromium", "firefox", "safari", "edge", "opera", "brave"},
		"Consider closing unused tabs or restarting the browser."},
	{[]string{"code", "pycharm", "intellij", "goland", "eclipse", "visual studio"},
		"Close unused projects or restart the IDE to free up resources."},
	{[]string{"spotify", "vlc", "netflix", "youtube", "prime"},
		"Pause the application if not actively using it."},
	{[]string{"zoom", "teams", "slack", "discord", "skype"},
		"Close unused calls or chats to save resources."},
	{[]string{"game", "steam", "epic", "blizzard", "riot"},
		"Close background apps to improve game performance."},
	{[]string{"onedrive", "dropbox", "google drive", "icloud", "syncthing"},
		"Pause syncing to free up memory."},
	{[]string{"word", "excel", "powerpoint", "outlook", "libreoffice"},
		"Close unused documents or spreadsheets."},
	{[]string{"premiere", "photoshop", "after effects", "lightroom", "gimp", "blender"},
		"Close unused projects or export completed work to free up resources."},
}

// recommendFor builds the advice string shown next to a classified process.
func recommendFor(name string, percent float64, bucket Bucket) string {
	var prefix string
	switch {
	case percent > 50:
		prefix = "CRITICAL: process consuming over 50% of system memory. "
	case bucket == model.BucketFlagged:
		prefix = "WARNING: high memory usage detected. "
	}

	lower := strings.ToLower(name)
	for _, cat := range appCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return prefix + cat.advice
			}
		}
	}

	if bucket == model.BucketFlagged {
		return prefix + "Restart the application to release unused memory."
	}
	return prefix + "Consider closing the application if not actively using it."
}
