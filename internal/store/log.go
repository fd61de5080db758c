package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rosterhq/roster/internal/task"
)

// Kind classifies what happened to a task.
type Kind string

const (
	KindCreated       Kind = "created"
	KindClaimed       Kind = "claimed"
	KindReleased      Kind = "released"
	KindCommented     Kind = "commented"
	KindStatusChanged Kind = "status_changed"
	KindArchived      Kind = "archived"
	KindUpdated       Kind = "updated"

	// KindProjectCreated is the genesis record; it carries no task.
	KindProjectCreated Kind = "project_created"
)

// Payload carries the kind-specific delta of an event. Created and
// updated events embed the full task record so the log alone can
// reconstruct state by replay.
type Payload struct {
	Task      *task.Task    `json:"task,omitempty"`
	From      task.Status   `json:"from,omitempty"`
	To        task.Status   `json:"to,omitempty"`
	ClaimedBy string        `json:"claimed_by,omitempty"`
	Comment   *task.Comment `json:"comment,omitempty"`
}

// Event is one immutable fact in the coordination log. Seq is assigned
// at append time under the commit lock and totally orders the project's
// history; events are never rewritten or deleted.
type Event struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Kind      Kind      `json:"kind"`
	TaskID    string    `json:"task_id"`
	Payload   Payload   `json:"payload,omitempty"`
}

// appendLog writes events as JSONL at the end of the log file. Appends
// are pure adds; prior bytes are never touched.
func (s *Store) appendLog(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	f, err := os.OpenFile(s.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var buf []byte
	for _, ev := range events {
		b, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event %d: %w", ev.Seq, err)
		}
		buf = append(buf, b...)
		buf = append(buf, '\n')
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("append event log: %w", err)
	}
	return f.Sync()
}

// ReadLog returns every well-formed event in seq order. A malformed
// line — typically a trailing fragment left by a process killed
// mid-append — is dropped with a warning; everything before it is kept.
func (s *Store) ReadLog() ([]Event, error) {
	f, err := os.Open(s.LogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			s.logger.Warn("dropping malformed event record", "file", logFile, "line", line, "error", err)
			continue
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return events, nil
}

// Tail returns the most recent n events, oldest first.
func (s *Store) Tail(n int) ([]Event, error) {
	events, err := s.ReadLog()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// TaskEvents returns the events touching one task, oldest first.
func (s *Store) TaskEvents(taskID string) ([]Event, error) {
	events, err := s.ReadLog()
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, ev := range events {
		if ev.TaskID == taskID {
			out = append(out, ev)
		}
	}
	return out, nil
}
