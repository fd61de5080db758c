package tracker

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
)

// Filter selects and orders tasks for listings. The zero value lists
// open tasks (backlog + pending) by urgency.
type Filter struct {
	Status    task.Status // restrict to one status; "" means open tasks
	All       bool        // include every status
	Priority  *task.Priority
	Tags      []string
	Search    string // substring of title, description, or tags
	ClaimedBy string
	Unclaimed bool
	Ready     bool   // exclude tasks blocked by incomplete dependencies
	Sort      string // urgency (default), due, created, priority
	Limit     int
}

// List returns tasks matching the filter, scored and ordered. Urgency
// is zero for non-open tasks; they only appear with Status or All set.
func (tr *Tracker) List(f Filter) ([]task.Ranked, error) {
	snap, err := tr.store.Load()
	if err != nil {
		return nil, err
	}
	now := tr.now().UTC()

	var out []task.Ranked
	for _, t := range snap.Tasks {
		switch {
		case f.Status != "":
			if t.Status != f.Status {
				continue
			}
		case !f.All && !t.Status.Open():
			continue
		}
		blocked := task.Blocked(t, snap.Tasks)
		if !matches(t, f, blocked) {
			continue
		}
		out = append(out, task.Ranked{
			Task:    t,
			Urgency: task.Urgency(t, now, blocked, tr.weights),
			Blocked: blocked,
		})
	}

	sortRanked(out, f.Sort)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matches(t *task.Task, f Filter, blocked bool) bool {
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	if f.ClaimedBy != "" && t.ClaimedBy != f.ClaimedBy {
		return false
	}
	if f.Unclaimed && t.IsClaimed() {
		return false
	}
	if f.Ready && blocked {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(strings.Join(t.Tags, " ")), q) {
			return false
		}
	}
	return true
}

func sortRanked(tasks []task.Ranked, key string) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch key {
		case "due":
			switch {
			case a.DueAt == nil && b.DueAt == nil:
			case a.DueAt == nil:
				return false
			case b.DueAt == nil:
				return true
			case !a.DueAt.Equal(*b.DueAt):
				return a.DueAt.Before(*b.DueAt)
			}
		case "created":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case "priority":
			if a.Priority.SortOrder() != b.Priority.SortOrder() {
				return a.Priority.SortOrder() < b.Priority.SortOrder()
			}
		default: // urgency
			if a.Urgency != b.Urgency {
				return a.Urgency > b.Urgency
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Stats summarizes the project for the status dashboard.
type Stats struct {
	Backlog        int
	Pending        int
	Completed      int
	Archived       int
	Claimed        int
	Overdue        int
	DueToday       int
	DueThisWeek    int
	CompletedToday int
	Hot            []task.Ranked // highest-urgency open tasks
}

// Stats computes dashboard counts over the current snapshot.
func (tr *Tracker) Stats() (*Stats, error) {
	snap, err := tr.store.Load()
	if err != nil {
		return nil, err
	}
	now := tr.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, 7)

	var st Stats
	for _, t := range snap.Tasks {
		switch t.Status {
		case task.StatusBacklog:
			st.Backlog++
		case task.StatusPending:
			st.Pending++
		case task.StatusCompleted:
			st.Completed++
			if t.CompletedAt != nil && !t.CompletedAt.Before(today) {
				st.CompletedToday++
			}
		case task.StatusArchived:
			st.Archived++
		}
		if t.IsClaimed() {
			st.Claimed++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
		if t.Status.Open() && t.DueAt != nil {
			if !t.DueAt.Before(today) && t.DueAt.Before(tomorrow) {
				st.DueToday++
			}
			if !t.DueAt.Before(today) && t.DueAt.Before(weekEnd) {
				st.DueThisWeek++
			}
		}
	}

	ranked := task.Rank(snap.Tasks, now, tr.weights)
	for _, r := range ranked {
		if r.Urgency >= 8.0 || r.IsOverdue(now) {
			st.Hot = append(st.Hot, r)
		}
		if len(st.Hot) == 5 {
			break
		}
	}
	return &st, nil
}

// VerifyReport is the outcome of a replay-vs-snapshot consistency check.
type VerifyReport struct {
	SnapshotTasks int
	ReplayedTasks int
	Events        int
	LastSeq       int64
	Divergent     []string // short ids of tasks that differ
}

// OK reports whether replaying the log reproduces the snapshot.
func (r *VerifyReport) OK() bool { return len(r.Divergent) == 0 }

// Verify replays the log from genesis and compares the result with the
// materialized snapshot.
func (tr *Tracker) Verify() (*VerifyReport, error) {
	snap, err := tr.store.Load()
	if err != nil {
		return nil, err
	}
	replayed, err := tr.store.Replay()
	if err != nil {
		return nil, err
	}
	events, err := tr.store.ReadLog()
	if err != nil {
		return nil, err
	}

	rep := &VerifyReport{
		SnapshotTasks: len(snap.Tasks),
		ReplayedTasks: len(replayed),
		Events:        len(events),
		LastSeq:       snap.LastSeq,
	}

	ids := make(map[string]bool, len(snap.Tasks))
	for id := range snap.Tasks {
		ids[id] = true
	}
	for id := range replayed {
		ids[id] = true
	}
	for id := range ids {
		a, b := snap.Tasks[id], replayed[id]
		if a == nil || b == nil || !sameTask(a, b) {
			rep.Divergent = append(rep.Divergent, shortID(id))
		}
	}
	sort.Strings(rep.Divergent)
	return rep, nil
}

// sameTask compares via canonical JSON, sidestepping time.Time
// representation quirks.
func sameTask(a, b *task.Task) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Tail returns the most recent n events from the coordination log.
func (tr *Tracker) Tail(n int) ([]store.Event, error) {
	return tr.store.Tail(n)
}

// TaskEvents returns the full event history of one task.
func (tr *Tracker) TaskEvents(idOrPrefix string) ([]store.Event, error) {
	t, err := tr.Get(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return tr.store.TaskEvents(t.ID)
}
