// Package brief renders a markdown work briefing for a task. This is
// how context moves from the board into an agent's prompt: everything
// the task record knows, flattened into one pasteable document.
package brief

import (
	"fmt"
	"strings"
	"time"

	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
)

// Builder constructs briefings from a loaded snapshot.
type Builder struct {
	snap   *store.Snapshot
	events []store.Event
}

// New creates a briefing builder. events may be nil when history is
// not wanted.
func New(snap *store.Snapshot, events []store.Event) *Builder {
	return &Builder{snap: snap, events: events}
}

// Build renders the briefing for one task. The document includes the
// task record, the state of each dependency, code references, the
// discussion thread, and the event history.
func (b *Builder) Build(t *task.Task, now time.Time) string {
	var parts []string

	parts = append(parts, b.taskSection(t, now))

	if dep := b.dependencySection(t); dep != "" {
		parts = append(parts, dep)
	}
	if crit := criteriaSection(t); crit != "" {
		parts = append(parts, crit)
	}
	if refs := refsSection(t); refs != "" {
		parts = append(parts, refs)
	}
	if disc := discussionSection(t); disc != "" {
		parts = append(parts, disc)
	}
	if hist := b.historySection(t.ID); hist != "" {
		parts = append(parts, hist)
	}

	parts = append(parts, workingAgreement(t))

	return strings.Join(parts, "\n\n")
}

func (b *Builder) taskSection(t *task.Task, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Task\n")
	sb.WriteString(fmt.Sprintf("**%s: %s**\n", t.ShortID(), t.Title))
	sb.WriteString(fmt.Sprintf("Status: %s", t.Status))
	if t.Priority != task.PriorityNone {
		sb.WriteString(fmt.Sprintf("  Priority: %s", t.Priority))
	}
	if t.IsClaimed() {
		sb.WriteString(fmt.Sprintf("  Claimed by: %s", t.ClaimedBy))
	}
	sb.WriteString("\n")
	if t.DueAt != nil {
		sb.WriteString(fmt.Sprintf("Due: %s", t.DueAt.Format("2006-01-02")))
		if t.IsOverdue(now) {
			sb.WriteString(" (OVERDUE)")
		}
		sb.WriteString("\n")
	}
	if len(t.Tags) > 0 {
		sb.WriteString("Tags: +" + strings.Join(t.Tags, " +") + "\n")
	}
	if t.Description != "" {
		sb.WriteString(fmt.Sprintf("\n## Description\n%s\n", t.Description))
	}
	return sb.String()
}

func (b *Builder) dependencySection(t *task.Task) string {
	if len(t.DependsOn) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Dependencies\n")
	for _, id := range t.DependsOn {
		dep, ok := b.snap.Tasks[id]
		if !ok {
			sb.WriteString(fmt.Sprintf("- %.8s (missing)\n", id))
			continue
		}
		mark := "incomplete"
		if dep.Status == task.StatusCompleted {
			mark = "done"
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", mark, dep.ShortID(), dep.Title))
	}
	return sb.String()
}

func criteriaSection(t *task.Task) string {
	if len(t.AcceptanceCriteria) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Acceptance criteria\n")
	sb.WriteString("The task is done only when all of these hold:\n")
	for i, c := range t.AcceptanceCriteria {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c))
	}
	return sb.String()
}

func refsSection(t *task.Task) string {
	if len(t.CodeRefs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Code references\n")
	for _, r := range t.CodeRefs {
		if r.Description != "" {
			sb.WriteString(fmt.Sprintf("- `%s` %s\n", r.Path, r.Description))
		} else {
			sb.WriteString(fmt.Sprintf("- `%s`\n", r.Path))
		}
	}
	return sb.String()
}

func discussionSection(t *task.Task) string {
	if len(t.Discussion) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Discussion\n")
	for _, c := range t.Discussion {
		sb.WriteString(fmt.Sprintf("- **[%s]** %s: %s\n",
			c.Author, c.Timestamp.Format("2006-01-02 15:04"), c.Text))
	}
	return sb.String()
}

func (b *Builder) historySection(taskID string) string {
	var relevant []store.Event
	for _, e := range b.events {
		if e.TaskID != taskID {
			continue
		}
		switch e.Kind {
		case store.KindClaimed, store.KindReleased, store.KindStatusChanged, store.KindArchived:
			relevant = append(relevant, e)
		}
	}
	if len(relevant) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## History\n")
	for _, e := range relevant {
		sb.WriteString(fmt.Sprintf("- %s %s %s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Actor, verb(e)))
	}
	return sb.String()
}

func verb(e store.Event) string {
	if e.Kind == store.KindStatusChanged {
		return fmt.Sprintf("moved %s to %s", e.Payload.From, e.Payload.To)
	}
	return string(e.Kind)
}

func workingAgreement(t *task.Task) string {
	var sb strings.Builder
	sb.WriteString("## Working agreement\n")
	sb.WriteString(fmt.Sprintf("- Claim before working: `roster claim %s`\n", t.ShortID()))
	sb.WriteString(fmt.Sprintf("- Record findings as you go: `roster comment %s \"...\"`\n", t.ShortID()))
	sb.WriteString(fmt.Sprintf("- When the acceptance criteria hold: `roster done %s`\n", t.ShortID()))
	sb.WriteString(fmt.Sprintf("- If you cannot finish, hand it back: `roster release %s`\n", t.ShortID()))
	return sb.String()
}
