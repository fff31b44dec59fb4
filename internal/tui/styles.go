package tui

import (
	"github.com/charmbracelet/lipgloss"

	"memtrack/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF87")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#5F5FD7"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	fairStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	poorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	flaggedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	messageStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#AFAFAF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case model.StatusGood:
		return goodStyle
	case model.StatusFair:
		return fairStyle
	default:
		return poorStyle
	}
}
