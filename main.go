package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"memtrack/internal/tui"
)

func main() {
	setupLogger()
	defer closeLogger()

	cfgPath := configPath()
	cfg, err := loadOrCreateConfig(cfgPath)
	if err != nil {
		slog.Error("Cannot load config", "path", cfgPath, "err", err)
		os.Exit(1)
	}

	app := InitApp(cfg, cfgPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Scheduler.Run(ctx)

	if os.Getenv("MEMTRACK_HEADLESS") != "" {
		runHeadless(ctx, app)
	} else {
		p := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			slog.Error("TUI failed", "err", err)
		}
	}

	// Bounded teardown: the scheduler must wind down an in-flight refresh
	// within its cycle timeout.
	stop()
	select {
	case <-app.Scheduler.Done():
	case <-time.After(cfg.RefreshTimeout() + time.Second):
		slog.Warn("Scheduler did not stop in time")
	}
}

// runHeadless logs a summary of each published result instead of drawing the
// TUI. Useful under systemd or when only the notifications matter.
func runHeadless(ctx context.Context, app *AppContext) {
	slog.Info("Running headless")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, ok := app.TryTakeLatest()
			if !ok {
				continue
			}
			slog.Info("Analysis published",
				"efficiency", res.EfficiencyScore,
				"status", res.EfficiencyStatus,
				"processes", res.SampleCount,
				"highest", len(res.HighestUsage),
				"flagged", len(res.Flagged))
		}
	}
}
