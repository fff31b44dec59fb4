package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"memtrack/internal/format"
	"memtrack/internal/model"
)

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(tickCmd(), m.pollLatest())

	case resultMsg:
		if msg.fresh {
			m.result = msg.result
			m.hasResult = true
			m.clampCursor()
		}

	case actionMsg:
		if msg.err != nil {
			m.message = "Error: " + msg.err.Error()
		} else {
			m.message = msg.message
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < len(m.activeList())-1 {
			m.cursor++
		}

	case "tab":
		if m.pane == paneHighest {
			m.pane = paneFlagged
		} else {
			m.pane = paneHighest
		}
		m.cursor = 0

	case "r":
		m.backend.ForceRefresh()
		m.message = "Refreshing..."

	case "k":
		if p, ok := m.selected(); ok {
			return m, terminateProcess(m.backend, p)
		}
		m.message = "No process selected."

	case "o":
		if p, ok := m.selected(); ok {
			return m, revealProcess(m.backend, p)
		}
		m.message = "No process selected."

	case "[":
		v := m.backend.AdjustHighestMinMB(-100)
		m.message = fmt.Sprintf("Highest-usage threshold: %.0f MB", v)
		m.backend.ForceRefresh()

	case "]":
		v := m.backend.AdjustHighestMinMB(100)
		m.message = fmt.Sprintf("Highest-usage threshold: %.0f MB", v)
		m.backend.ForceRefresh()

	case "{":
		v := m.backend.AdjustFlaggedMinMB(-250)
		m.message = fmt.Sprintf("Flagged threshold: %.0f MB", v)
		m.backend.ForceRefresh()

	case "}":
		v := m.backend.AdjustFlaggedMinMB(250)
		m.message = fmt.Sprintf("Flagged threshold: %.0f MB", v)
		m.backend.ForceRefresh()

	case "R":
		return m, reloadConfig(m.backend)
	}

	return m, nil
}

// terminateProcess runs the terminate in the background and reports back.
func terminateProcess(backend Backend, p model.ClassifiedProcess) tea.Cmd {
	return func() tea.Msg {
		if err := backend.TerminateProcess(p.Sample.PID); err != nil {
			return actionMsg{err: err}
		}
		backend.ForceRefresh()
		return actionMsg{message: fmt.Sprintf("Terminated %s (pid %d)", p.Sample.Name, p.Sample.PID)}
	}
}

// revealProcess opens the executable's folder in the file browser.
func revealProcess(backend Backend, p model.ClassifiedProcess) tea.Cmd {
	return func() tea.Msg {
		if err := backend.RevealProcess(p.Sample.ExePath); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{message: "Opened " + format.Truncate(p.Sample.ExePath, 60)}
	}
}

// reloadConfig re-reads config.json.
func reloadConfig(backend Backend) tea.Cmd {
	return func() tea.Msg {
		if err := backend.ReloadConfig(); err != nil {
			return actionMsg{err: err}
		}
		backend.ForceRefresh()
		return actionMsg{message: "Config reloaded"}
	}
}
