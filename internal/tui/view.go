package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"memtrack/internal/format"
	"memtrack/internal/model"
)

// View renders the TUI interface.
func (m Model) View() string {
	if !m.hasResult {
		return titleStyle.Render("Memory Tracker") + "\n\n" +
			messageStyle.Render(m.message) + "\n" +
			helpStyle.Render("q quit")
	}

	sections := []string{
		titleStyle.Render("Memory Tracker"),
		m.renderEfficiency(),
		m.renderTable("Usage Analyzer", m.result.HighestUsage, m.pane == paneHighest),
		m.renderTable("Flagged Applications", m.result.Flagged, m.pane == paneFlagged),
	}
	if m.message != "" {
		sections = append(sections, messageStyle.Render(m.message))
	}
	sections = append(sections, helpStyle.Render(
		"↑/↓ select · tab pane · r refresh · k kill · o open folder · [ ] usage MB · { } flagged MB · R reload · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderEfficiency() string {
	score := m.result.EfficiencyScore
	status := m.result.EfficiencyStatus

	line := fmt.Sprintf("%s  Efficiency Score: %.2f%%  ·  %s  ·  %d processes · total %s",
		format.MakeProgressBar(score),
		score,
		statusStyle(status).Render("Status: "+status),
		m.result.SampleCount,
		format.FormatBytes(m.result.TotalSystemBytes))

	return panelStyle.Render(line)
}

func (m Model) renderTable(title string, rows []model.ClassifiedProcess, active bool) string {
	var b strings.Builder

	header := fmt.Sprintf("%-24s %7s %10s %8s  %s", "APPLICATION", "PID", "MEMORY", "USAGE", "RECOMMENDATION")
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(messageStyle.Render("  nothing to show"))
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-24s %7d %10s %8s  %s",
			format.Truncate(row.Sample.Name, 24),
			row.Sample.PID,
			format.FormatBytes(row.Sample.ResidentBytes),
			format.FormatPercent(row.PercentOfTotal),
			format.Truncate(row.Recommendation, 60))

		switch {
		case active && i == m.cursor:
			line = selectedStyle.Render(line)
		case row.Bucket == model.BucketFlagged:
			line = flaggedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return panelStyle.Render(b.String())
}
