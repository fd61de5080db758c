package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rosterhq/roster/internal/tracker"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.currentScreen {
		case screenCreate:
			return m.handleCreateKey(msg)
		case screenComment:
			return m.handleCommentKey(msg)
		case screenDetail:
			return m.handleDetailKey(msg)
		default:
			return m.handleBoardKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.setStatus("Load failed: " + msg.err.Error())
			return m, nil
		}
		m.rebuildColumns(msg.ranked)
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.setStatus("Load failed: " + msg.err.Error())
			return m, nil
		}
		m.selected = msg.task
		m.taskEvents = msg.events
		m.currentScreen = screenDetail
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.verb + " failed: " + msg.err.Error())
		} else {
			m.setStatus(msg.verb + " ok")
		}
		return m, m.refresh()

	case tickMsg:
		if m.statusMsg != "" && time.Since(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		return m, tea.Batch(tickCmd(), m.refresh())
	}

	return m, nil
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.cursorRow++
		m.clampCursor()
	case "k", "up":
		m.cursorRow--
		m.clampCursor()
	case "h", "left":
		m.cursorCol--
		m.clampCursor()
	case "l", "right":
		m.cursorCol++
		m.clampCursor()

	case "enter":
		if t := m.cursorTask(); t != nil {
			return m, m.loadDetail(t.ID)
		}

	case "c":
		if t := m.cursorTask(); t != nil {
			return m, m.doAction("claim", t.ID)
		}
	case "r":
		if t := m.cursorTask(); t != nil {
			return m, m.doAction("release", t.ID)
		}
	case "d":
		if t := m.cursorTask(); t != nil {
			return m, m.doAction("done", t.ID)
		}
	case "x":
		if t := m.cursorTask(); t != nil {
			return m, m.doAction("archive", t.ID)
		}

	case "a":
		m.currentScreen = screenCreate
		m.inputFocused = 0
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		return m, m.titleInput.Focus()

	case "m":
		if t := m.cursorTask(); t != nil {
			m.selected = t
			m.currentScreen = screenComment
			m.commentInput.SetValue("")
			return m, m.commentInput.Focus()
		}

	case "R":
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) doAction(verb, id string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch verb {
		case "claim":
			_, _, err = m.tracker.Claim(id, m.actor)
		case "release":
			_, _, err = m.tracker.Release(id, m.actor)
		case "done":
			_, _, err = m.tracker.Done(id, m.actor)
		case "archive":
			_, _, err = m.tracker.Archive(id, m.actor)
		}
		return actionDoneMsg{verb: verb, err: err}
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.currentScreen = screenBoard
		m.selected = nil
		m.taskEvents = nil
		return m, m.refresh()
	case "c":
		if m.selected != nil {
			id := m.selected.ID
			return m, tea.Sequence(m.doAction("claim", id), m.loadDetail(id))
		}
	case "d":
		if m.selected != nil {
			id := m.selected.ID
			return m, tea.Sequence(m.doAction("done", id), m.loadDetail(id))
		}
	case "m":
		if m.selected != nil {
			m.currentScreen = screenComment
			m.commentInput.SetValue("")
			return m, m.commentInput.Focus()
		}
	}
	return m, nil
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentScreen = screenBoard
		m.titleInput.Blur()
		m.descInput.Blur()
		return m, nil

	case "tab":
		if m.inputFocused == 0 {
			m.inputFocused = 1
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.inputFocused = 0
		m.descInput.Blur()
		return m, m.titleInput.Focus()

	case "enter":
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			m.setStatus("Title required")
			return m, nil
		}
		desc := strings.TrimSpace(m.descInput.Value())
		m.currentScreen = screenBoard
		m.titleInput.Blur()
		m.descInput.Blur()
		return m, func() tea.Msg {
			_, _, err := m.tracker.Add(tracker.AddRequest{
				Title:       title,
				Description: desc,
				Actor:       m.actor,
			})
			return actionDoneMsg{verb: "add", err: err}
		}
	}

	var cmd tea.Cmd
	if m.inputFocused == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentScreen = screenBoard
		m.commentInput.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.commentInput.Value())
		if text == "" {
			m.setStatus("Empty comment")
			return m, nil
		}
		id := m.selected.ID
		m.currentScreen = screenBoard
		m.commentInput.Blur()
		return m, func() tea.Msg {
			_, _, err := m.tracker.Comment(id, m.actor, text)
			return actionDoneMsg{verb: "comment", err: err}
		}
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}
