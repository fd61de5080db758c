package brief

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
)

func testSnapshot(tasks ...*task.Task) *store.Snapshot {
	snap := &store.Snapshot{Tasks: map[string]*task.Task{}}
	for _, t := range tasks {
		snap.Tasks[t.ID] = t
	}
	return snap
}

func newTask(title string) *task.Task {
	now := time.Now().UTC()
	return &task.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    task.StatusBacklog,
		Priority:  task.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBuild_BasicTask(t *testing.T) {
	tk := newTask("Implement login")
	tk.Description = "Create POST /auth/login endpoint"

	doc := New(testSnapshot(tk), nil).Build(tk, time.Now())

	if !strings.Contains(doc, "Implement login") {
		t.Error("briefing missing task title")
	}
	if !strings.Contains(doc, "POST /auth/login") {
		t.Error("briefing missing description")
	}
	if !strings.Contains(doc, "roster claim "+tk.ShortID()) {
		t.Error("briefing missing claim instruction")
	}
}

func TestBuild_Criteria(t *testing.T) {
	tk := newTask("Add rate limiting")
	tk.AcceptanceCriteria = []string{"429 after 100 req/min", "Retry-After header set"}

	doc := New(testSnapshot(tk), nil).Build(tk, time.Now())

	if !strings.Contains(doc, "Acceptance criteria") {
		t.Error("briefing missing criteria section")
	}
	if !strings.Contains(doc, "1. 429 after 100 req/min") {
		t.Error("briefing missing numbered criterion")
	}
}

func TestBuild_DependencyStates(t *testing.T) {
	dep := newTask("Design schema")
	dep.Status = task.StatusCompleted
	open := newTask("Write migration")
	tk := newTask("Implement API")
	tk.DependsOn = []string{dep.ID, open.ID, "0000dead-0000-0000-0000-000000000000"}

	doc := New(testSnapshot(tk, dep, open), nil).Build(tk, time.Now())

	if !strings.Contains(doc, "[done] "+dep.ShortID()) {
		t.Error("briefing missing completed dependency marker")
	}
	if !strings.Contains(doc, "[incomplete] "+open.ShortID()) {
		t.Error("briefing missing incomplete dependency marker")
	}
	if !strings.Contains(doc, "(missing)") {
		t.Error("briefing should flag dangling dependency ids")
	}
}

func TestBuild_HistoryFiltersOtherTasks(t *testing.T) {
	tk := newTask("Fix flaky test")
	other := newTask("Unrelated")
	now := time.Now().UTC()
	events := []store.Event{
		{Seq: 1, Timestamp: now, Actor: "alice", Kind: store.KindClaimed, TaskID: tk.ID},
		{Seq: 2, Timestamp: now, Actor: "bob", Kind: store.KindClaimed, TaskID: other.ID},
		{Seq: 3, Timestamp: now, Actor: "alice", Kind: store.KindCommented, TaskID: tk.ID},
	}

	doc := New(testSnapshot(tk, other), events).Build(tk, now)

	if !strings.Contains(doc, "alice claimed") {
		t.Error("briefing missing claim history")
	}
	if strings.Contains(doc, "bob") {
		t.Error("briefing leaked another task's history")
	}
}

func TestBuild_Overdue(t *testing.T) {
	tk := newTask("Ship release notes")
	past := time.Now().Add(-48 * time.Hour)
	tk.DueAt = &past

	doc := New(testSnapshot(tk), nil).Build(tk, time.Now())

	if !strings.Contains(doc, "OVERDUE") {
		t.Error("briefing should flag overdue tasks")
	}
}
