package store

import "github.com/rosterhq/roster/internal/task"

// Replay folds the event log from genesis into a task map. For a
// healthy project the result equals the materialized snapshot — the
// internal consistency check between the two persistence artifacts.
func (s *Store) Replay() (map[string]*task.Task, error) {
	events, err := s.ReadLog()
	if err != nil {
		return nil, err
	}
	tasks := make(map[string]*task.Task)
	for _, ev := range events {
		apply(tasks, ev)
	}
	return tasks, nil
}

// apply folds one event into the task map. Events referring to tasks
// the map does not hold (e.g. a skipped corrupt created record) are
// ignored rather than failing the whole replay.
func apply(tasks map[string]*task.Task, ev Event) {
	switch ev.Kind {
	case KindCreated, KindUpdated:
		if ev.Payload.Task != nil {
			tasks[ev.Payload.Task.ID] = ev.Payload.Task.Clone()
		}
		return
	}

	t, ok := tasks[ev.TaskID]
	if !ok {
		return
	}

	switch ev.Kind {
	case KindClaimed:
		ts := ev.Timestamp
		t.Status = task.StatusPending
		t.ClaimedBy = ev.Payload.ClaimedBy
		t.ClaimedAt = &ts
	case KindReleased:
		t.Status = task.StatusBacklog
		t.ClaimedBy = ""
		t.ClaimedAt = nil
	case KindStatusChanged:
		t.Status = ev.Payload.To
		if ev.Payload.To == task.StatusCompleted {
			ts := ev.Timestamp
			t.CompletedAt = &ts
			t.ClaimedBy = ""
			t.ClaimedAt = nil
		}
	case KindArchived:
		t.Status = task.StatusArchived
		t.ClaimedBy = ""
		t.ClaimedAt = nil
	case KindCommented:
		if ev.Payload.Comment != nil {
			t.Discussion = append(t.Discussion, *ev.Payload.Comment)
		}
	}
	t.UpdatedAt = ev.Timestamp
}
