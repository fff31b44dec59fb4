package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"memtrack/internal/model"
)

// Backend is what the TUI needs from the application core. Every call is
// non-blocking or runs inside a tea.Cmd, so the event loop never waits on
// the refresh cycle.
type Backend interface {
	TryTakeLatest() (model.AnalysisResult, bool)
	LatestResult() (model.AnalysisResult, bool)
	ForceRefresh()
	TerminateProcess(pid int32) error
	RevealProcess(exePath string) error
	AdjustHighestMinMB(deltaMB float64) float64
	AdjustFlaggedMinMB(deltaMB float64) float64
	ReloadConfig() error
}

// Panes the cursor can live in.
const (
	paneHighest = iota
	paneFlagged
)

// Model is the TUI application state.
type Model struct {
	backend Backend

	result    model.AnalysisResult
	hasResult bool

	pane    int
	cursor  int
	message string

	width  int
	height int
}

// tickMsg drives the poll cadence.
type tickMsg time.Time

// resultMsg carries a freshly taken analysis result.
type resultMsg struct {
	result model.AnalysisResult
	fresh  bool
}

// actionMsg carries the outcome of a user-requested action.
type actionMsg struct {
	message string
	err     error
}

func NewModel(backend Backend) Model {
	return Model{backend: backend, message: "Waiting for first snapshot..."}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.pollLatest())
}

// tickCmd sends a tick message every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// pollLatest consumes the delivery slot if a new result is pending.
func (m Model) pollLatest() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		if res, ok := backend.TryTakeLatest(); ok {
			return resultMsg{result: res, fresh: true}
		}
		return resultMsg{fresh: false}
	}
}

// activeList returns the rows of the pane the cursor is in.
func (m Model) activeList() []model.ClassifiedProcess {
	if m.pane == paneFlagged {
		return m.result.Flagged
	}
	return m.result.HighestUsage
}

// selected returns the process under the cursor, if any.
func (m Model) selected() (model.ClassifiedProcess, bool) {
	list := m.activeList()
	if len(list) == 0 || m.cursor >= len(list) {
		return model.ClassifiedProcess{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	list := m.activeList()
	if m.cursor >= len(list) {
		m.cursor = len(list) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
