package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)

	colHeaderStyle = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1).
			Width(30)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1).
				Width(30).
				Bold(true)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2).
			Width(60)

	statusStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)

	priHighStyle = lipgloss.NewStyle().Foreground(clrRed).Bold(true)
	priMedStyle  = lipgloss.NewStyle().Foreground(clrYellow)
	priLowStyle  = lipgloss.NewStyle().Foreground(clrDim)

	claimStyle   = lipgloss.NewStyle().Foreground(clrCyan)
	overdueStyle = lipgloss.NewStyle().Foreground(clrRed)
	urgencyStyle = lipgloss.NewStyle().Foreground(clrBlue)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentScreen {
	case screenDetail:
		return m.viewDetail()
	case screenCreate:
		return m.viewCreate()
	case screenComment:
		return m.viewComment()
	default:
		return m.viewBoard()
	}
}

func (m Model) viewBoard() string {
	var b strings.Builder

	total := 0
	for i := range m.columns {
		total += len(m.columns[i])
	}
	header := titleStyle.Render("roster board")
	header += dimStyle.Render(fmt.Sprintf(" — %d tasks, acting as %s", total, m.actor))
	b.WriteString(header + "\n\n")

	now := time.Now()
	var cols []string
	for ci := range m.columns {
		var col strings.Builder
		col.WriteString(colHeaderStyle.Render(fmt.Sprintf("%s (%d)", columnLabels[ci], len(m.columns[ci]))) + "\n")
		for ri, r := range m.columns[ci] {
			style := cardStyle
			if ci == m.cursorCol && ri == m.cursorRow {
				style = cardSelectedStyle
			}
			col.WriteString(style.Render(m.renderCard(r, now)) + "\n")
		}
		cols = append(cols, col.String())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	b.WriteString("\n" + m.footer(
		"↑↓←→", "move",
		"enter", "detail",
		"a", "add",
		"c", "claim",
		"r", "release",
		"d", "done",
		"m", "comment",
		"q", "quit",
	))
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m Model) renderCard(r task.Ranked, now time.Time) string {
	var b strings.Builder
	b.WriteString(subtleStyle.Render(r.ShortID()))
	if r.Priority != task.PriorityNone {
		b.WriteString(" " + priorityStyle(r.Priority).Render(string(r.Priority)))
	}
	if r.Status.Open() {
		b.WriteString(" " + urgencyStyle.Render(fmt.Sprintf("%.1f", r.Urgency)))
	}
	b.WriteString("\n" + truncate(r.Title, 26))
	if r.IsClaimed() {
		b.WriteString("\n" + claimStyle.Render("["+r.ClaimedBy+"]"))
	}
	if r.DueAt != nil {
		s := "due " + r.DueAt.Format("Jan 2")
		if r.IsOverdue(now) {
			b.WriteString("\n" + overdueStyle.Render("⚠ "+s))
		} else {
			b.WriteString("\n" + dimStyle.Render(s))
		}
	}
	if r.Blocked {
		b.WriteString("\n" + overdueStyle.Render("⊘ blocked"))
	}
	return b.String()
}

func (m Model) viewDetail() string {
	if m.selected == nil {
		return "loading..."
	}
	t := m.selected

	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title) + "\n")
	b.WriteString(dimStyle.Render(t.ID) + "\n\n")
	b.WriteString(fmt.Sprintf("status: %s    priority: %s\n", t.Status, t.Priority))
	if t.IsClaimed() {
		b.WriteString(claimStyle.Render("claimed by "+t.ClaimedBy) + "\n")
	}
	if t.DueAt != nil {
		b.WriteString("due: " + t.DueAt.Format("2006-01-02 15:04") + "\n")
	}
	if len(t.Tags) > 0 {
		b.WriteString("tags: +" + strings.Join(t.Tags, " +") + "\n")
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	if len(t.AcceptanceCriteria) > 0 {
		b.WriteString("\n" + colHeaderStyle.Render("Acceptance criteria") + "\n")
		for i, c := range t.AcceptanceCriteria {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, c))
		}
	}
	if len(t.Discussion) > 0 {
		b.WriteString("\n" + colHeaderStyle.Render("Discussion") + "\n")
		for _, c := range t.Discussion {
			b.WriteString(claimStyle.Render(c.Author) + dimStyle.Render(" "+c.Timestamp.Format("Jan 2 15:04")) + "\n")
			b.WriteString("  " + c.Text + "\n")
		}
	}
	if len(m.taskEvents) > 0 {
		b.WriteString("\n" + colHeaderStyle.Render("History") + "\n")
		for _, e := range m.taskEvents {
			b.WriteString(dimStyle.Render(e.Timestamp.Format("Jan 2 15:04")) +
				fmt.Sprintf("  %s %s\n", e.Actor, eventVerb(e)))
		}
	}

	b.WriteString("\n" + m.footer("c", "claim", "d", "done", "m", "comment", "esc", "back"))
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	return b.String()
}

func eventVerb(e store.Event) string {
	switch e.Kind {
	case store.KindStatusChanged:
		return fmt.Sprintf("%s → %s", e.Payload.From, e.Payload.To)
	case store.KindCommented:
		return "commented"
	default:
		return strings.ReplaceAll(string(e.Kind), "_", " ")
	}
}

func (m Model) viewCreate() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task") + "\n\n")
	b.WriteString(m.titleInput.View() + "\n")
	b.WriteString(m.descInput.View() + "\n\n")
	b.WriteString(m.footer("tab", "switch field", "enter", "create", "esc", "cancel"))
	return formStyle.Render(b.String())
}

func (m Model) viewComment() string {
	var b strings.Builder
	title := "Comment"
	if m.selected != nil {
		title = "Comment on " + m.selected.ShortID()
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.commentInput.View() + "\n\n")
	b.WriteString(m.footer("enter", "post", "esc", "cancel"))
	return formStyle.Render(b.String())
}

// footer renders alternating key/description help pairs.
func (m Model) footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, footerKeyStyle.Render(pairs[i])+footerDescStyle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, footerDescStyle.Render("  ·  "))
}

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return priHighStyle
	case task.PriorityMedium:
		return priMedStyle
	default:
		return priLowStyle
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
