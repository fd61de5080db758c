// Package tui implements the interactive board: a three-column kanban
// over the tracker with claim/release/done actions and inline task
// creation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
	"github.com/rosterhq/roster/internal/tracker"
)

// screen represents which view the TUI is showing.
type screen int

const (
	screenBoard   screen = iota // kanban columns (main)
	screenDetail                // one task, full record
	screenCreate                // new-task form
	screenComment               // comment form for the selected task
)

// column indices for navigation.
const (
	colBacklog = 0
	colPending = 1
	colDone    = 2
	numColumns = 3
)

var columnStatuses = [numColumns]task.Status{
	task.StatusBacklog,
	task.StatusPending,
	task.StatusCompleted,
}

var columnLabels = [numColumns]string{
	"BACKLOG",
	"IN PROGRESS",
	"DONE",
}

// Model is the top-level bubbletea model.
type Model struct {
	tracker *tracker.Tracker
	actor   string
	width   int
	height  int

	currentScreen screen

	// Board state.
	columns   [numColumns][]task.Ranked
	cursorCol int
	cursorRow int

	// Detail state.
	selected   *task.Task
	taskEvents []store.Event

	// Text inputs for create/comment forms.
	titleInput   textinput.Model
	descInput    textinput.Model
	commentInput textinput.Model
	inputFocused int // 0=title, 1=desc in create form

	statusMsg  string
	statusTime time.Time
	quitting   bool
}

// New creates the TUI model for a tracker. actor is recorded on every
// mutation performed from the board.
func New(tr *tracker.Tracker, actor string) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 120
	ti.Width = 50

	di := textinput.New()
	di.Placeholder = "Description (optional)..."
	di.CharLimit = 500
	di.Width = 50

	ci := textinput.New()
	ci.Placeholder = "Comment..."
	ci.CharLimit = 500
	ci.Width = 50

	return Model{
		tracker:      tr,
		actor:        actor,
		titleInput:   ti,
		descInput:    di,
		commentInput: ci,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tickCmd())
}

type boardLoadedMsg struct {
	ranked []task.Ranked
	err    error
}

type detailLoadedMsg struct {
	task   *task.Task
	events []store.Event
	err    error
}

type actionDoneMsg struct {
	verb string
	err  error
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		ranked, err := m.tracker.List(tracker.Filter{All: true})
		return boardLoadedMsg{ranked: ranked, err: err}
	}
}

func (m Model) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.tracker.Get(id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		events, err := m.tracker.TaskEvents(id)
		return detailLoadedMsg{task: t, events: events, err: err}
	}
}

func (m *Model) rebuildColumns(ranked []task.Ranked) {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, r := range ranked {
		for i, status := range columnStatuses {
			if r.Status == status {
				m.columns[i] = append(m.columns[i], r)
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= numColumns {
		m.cursorCol = numColumns - 1
	}
	col := m.columns[m.cursorCol]
	if m.cursorRow >= len(col) {
		m.cursorRow = len(col) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

func (m *Model) cursorTask() *task.Task {
	col := m.columns[m.cursorCol]
	if m.cursorRow < len(col) {
		return col[m.cursorRow].Task
	}
	return nil
}
