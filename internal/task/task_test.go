package task

import (
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"high": PriorityHigh, "H": PriorityHigh,
		"medium": PriorityMedium, "med": PriorityMedium, "m": PriorityMedium,
		"low": PriorityLow, "l": PriorityLow,
		"": PriorityNone, "none": PriorityNone,
	}
	for in, want := range cases {
		got, ok := ParsePriority(in)
		if !ok || got != want {
			t.Errorf("ParsePriority(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Error("expected ParsePriority to reject unknown value")
	}
}

func TestShortID(t *testing.T) {
	tk := &Task{ID: "abcdef12-3456-7890-0000-000000000000"}
	if got := tk.ShortID(); got != "abcdef12" {
		t.Fatalf("expected abcdef12, got %s", got)
	}
	short := &Task{ID: "tiny"}
	if got := short.ShortID(); got != "tiny" {
		t.Fatalf("expected tiny, got %s", got)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	open := &Task{Status: StatusBacklog, DueAt: &past}
	if !open.IsOverdue(now) {
		t.Error("open task past due should be overdue")
	}

	done := &Task{Status: StatusCompleted, DueAt: &past}
	if done.IsOverdue(now) {
		t.Error("completed task is never overdue")
	}

	noDue := &Task{Status: StatusBacklog}
	if noDue.IsOverdue(now) {
		t.Error("task without due date is never overdue")
	}
}

func TestClone_Independent(t *testing.T) {
	now := time.Now()
	orig := &Task{
		ID:                 "x",
		Tags:               []string{"a"},
		DueAt:              &now,
		DependsOn:          []string{"dep"},
		Discussion:         []Comment{{Author: "alice", Text: "hi"}},
		AcceptanceCriteria: []string{"works"},
	}

	c := orig.Clone()
	c.Tags[0] = "changed"
	c.DependsOn[0] = "changed"
	c.Discussion[0].Text = "changed"
	c.AcceptanceCriteria[0] = "changed"
	*c.DueAt = now.Add(time.Hour)

	if orig.Tags[0] != "a" || orig.DependsOn[0] != "dep" ||
		orig.Discussion[0].Text != "hi" || orig.AcceptanceCriteria[0] != "works" {
		t.Fatal("mutating clone leaked into original slices")
	}
	if !orig.DueAt.Equal(now) {
		t.Fatal("mutating clone's due date leaked into original")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"+urgent", "bug", " bug ", "", "urgent", "api"})
	want := []string{"api", "bug", "urgent"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestStatus_Transitions(t *testing.T) {
	for _, s := range []Status{StatusBacklog, StatusPending, StatusCompleted, StatusArchived} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("doing").Valid() {
		t.Error("unknown status should be invalid")
	}
	if !StatusBacklog.Open() || !StatusPending.Open() {
		t.Error("backlog and pending are open")
	}
	if StatusCompleted.Open() || StatusArchived.Open() {
		t.Error("completed and archived are not open")
	}
}
