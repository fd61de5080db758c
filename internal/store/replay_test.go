package store

import (
	"testing"
	"time"

	"github.com/rosterhq/roster/internal/task"
)

// Drives a task through its whole lifecycle and checks that folding the
// log reproduces exactly what the snapshot holds.
func TestReplay_MatchesSnapshot(t *testing.T) {
	s := testStore(t)
	snap, _ := s.Load()

	tk := newTask("full lifecycle")
	snap.Tasks[tk.ID] = tk
	if err := s.Commit(snap, createdEvent(tk, "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	tk.Status = task.StatusPending
	tk.ClaimedBy = "bob"
	tk.ClaimedAt = &now
	tk.UpdatedAt = now
	if err := s.Commit(snap, &Event{
		Timestamp: now, Actor: "bob", Kind: KindClaimed, TaskID: tk.ID,
		Payload: Payload{ClaimedBy: "bob"},
	}); err != nil {
		t.Fatalf("claim: %v", err)
	}

	c := task.Comment{Author: "bob", Timestamp: now, Text: "halfway there"}
	tk.Discussion = append(tk.Discussion, c)
	tk.UpdatedAt = now
	if err := s.Commit(snap, &Event{
		Timestamp: now, Actor: "bob", Kind: KindCommented, TaskID: tk.ID,
		Payload: Payload{Comment: &c},
	}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	tk.Status = task.StatusCompleted
	tk.CompletedAt = &now
	tk.ClaimedBy = ""
	tk.ClaimedAt = nil
	tk.UpdatedAt = now
	if err := s.Commit(snap, &Event{
		Timestamp: now, Actor: "bob", Kind: KindStatusChanged, TaskID: tk.ID,
		Payload: Payload{From: task.StatusPending, To: task.StatusCompleted},
	}); err != nil {
		t.Fatalf("done: %v", err)
	}

	replayed, err := s.Replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	got, ok := replayed[tk.ID]
	if !ok {
		t.Fatal("replay lost the task")
	}

	reloaded, _ := s.Load()
	want := reloaded.Tasks[tk.ID]

	if got.Status != want.Status {
		t.Errorf("status: replay %s, snapshot %s", got.Status, want.Status)
	}
	if got.ClaimedBy != want.ClaimedBy {
		t.Errorf("claimed_by: replay %q, snapshot %q", got.ClaimedBy, want.ClaimedBy)
	}
	if (got.CompletedAt == nil) != (want.CompletedAt == nil) {
		t.Errorf("completed_at presence differs")
	}
	if len(got.Discussion) != len(want.Discussion) {
		t.Errorf("discussion: replay %d entries, snapshot %d", len(got.Discussion), len(want.Discussion))
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("updated_at: replay %v, snapshot %v", got.UpdatedAt, want.UpdatedAt)
	}
}

func TestReplay_IgnoresEventsForUnknownTasks(t *testing.T) {
	s := testStore(t)
	snap, _ := s.Load()
	tk := newTask("real")
	snap.Tasks[tk.ID] = tk
	if err := s.Commit(snap, createdEvent(tk, "a")); err != nil {
		t.Fatalf("commit: %v", err)
	}

	ghost := &Event{
		Timestamp: time.Now().UTC(), Actor: "x", Kind: KindClaimed,
		TaskID: "no-such-task", Payload: Payload{ClaimedBy: "x"},
	}
	if err := s.Commit(snap, ghost); err != nil {
		t.Fatalf("ghost commit: %v", err)
	}

	replayed, err := s.Replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(replayed) != 1 {
		t.Fatalf("expected 1 task, got %d", len(replayed))
	}
}

func TestReplay_UpdatedEventReplacesRecord(t *testing.T) {
	s := testStore(t)
	snap, _ := s.Load()
	tk := newTask("before edit")
	snap.Tasks[tk.ID] = tk
	if err := s.Commit(snap, createdEvent(tk, "a")); err != nil {
		t.Fatalf("commit: %v", err)
	}

	edited := tk.Clone()
	edited.Title = "after edit"
	edited.Priority = task.PriorityHigh
	snap.Tasks[tk.ID] = edited
	if err := s.Commit(snap, &Event{
		Timestamp: time.Now().UTC(), Actor: "a", Kind: KindUpdated,
		TaskID: tk.ID, Payload: Payload{Task: edited},
	}); err != nil {
		t.Fatalf("update commit: %v", err)
	}

	replayed, _ := s.Replay()
	got := replayed[tk.ID]
	if got.Title != "after edit" || got.Priority != task.PriorityHigh {
		t.Fatalf("updated event not applied on replay: %+v", got)
	}
}
