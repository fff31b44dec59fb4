package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memtrack/internal/cmdexec"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// Notifier delivers a notification to one sink. Delivery failures are the
// caller's problem to log, never to propagate into the refresh cycle.
type Notifier interface {
	Notify(ctx context.Context, sev Severity, title, body string) error
}

// BotAPI abstracts the Telegram bot methods used by the app.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramNotifier mirrors alerts to a Telegram chat.
type telegramNotifier struct {
	bot    BotAPI
	chatID int64
}

func (n telegramNotifier) Notify(_ context.Context, sev Severity, title, body string) error {
	var emoji string
	switch sev {
	case SeverityCritical:
		emoji = "🚨"
	case SeverityWarning:
		emoji = "⚠️"
	default:
		emoji = "ℹ️"
	}

	m := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("%s *%s*\n\n%s", emoji, title, body))
	m.ParseMode = "Markdown"
	if _, err := n.bot.Send(m); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// desktopNotifier raises a desktop notification via notify-send.
type desktopNotifier struct{}

func (desktopNotifier) Notify(ctx context.Context, sev Severity, title, body string) error {
	if !cmdexec.Exists("notify-send") {
		return fmt.Errorf("notify-send: %w", cmdexec.ErrUnsupportedOS)
	}

	urgency := "normal"
	switch sev {
	case SeverityCritical:
		urgency = "critical"
	case SeverityInfo:
		urgency = "low"
	}
	return cmdexec.Run(ctx, "notify-send", "-u", urgency, "-a", "memtrack", title, body)
}

// multiNotifier fans out to every configured sink and reports the combined
// failures.
type multiNotifier []Notifier

func (m multiNotifier) Notify(ctx context.Context, sev Severity, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, sev, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildNotifier wires the sinks the config enables. Telegram credentials are
// read once at startup; changing them requires a restart.
func buildNotifier(cfg *Config) Notifier {
	var sinks multiNotifier

	if cfg.Notifications.Desktop.Enabled {
		sinks = append(sinks, desktopNotifier{})
	}
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			slog.Error("Telegram notifier disabled: bot init failed", "err", err)
		} else {
			sinks = append(sinks, telegramNotifier{bot: bot, chatID: cfg.Telegram.ChatID})
		}
	}

	return sinks
}

// notifySafe swallows delivery failures, logging them only.
func notifySafe(ctx context.Context, n Notifier, sev Severity, title, body string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, sev, title, body); err != nil {
		slog.Warn("Notification delivery failed", "title", title, "severity", sev.String(), "err", err)
	}
}
