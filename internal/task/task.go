// Package task holds the domain model for roster: tasks, their lifecycle
// states, and the urgency ranking used for prioritized listings.
package task

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Status represents the current lifecycle state of a task.
type Status string

const (
	StatusBacklog   Status = "backlog"
	StatusPending   Status = "pending" // claimed, someone is working on it
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived" // terminal
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusPending, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Open reports whether the status counts as open work (rankable).
func (s Status) Open() bool {
	return s == StatusBacklog || s == StatusPending
}

// Priority represents task priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// ParsePriority normalizes a user-supplied priority string.
func ParsePriority(v string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high", "h":
		return PriorityHigh, true
	case "medium", "m", "med":
		return PriorityMedium, true
	case "low", "l":
		return PriorityLow, true
	case "", "none":
		return PriorityNone, true
	}
	return PriorityNone, false
}

// SortOrder returns the priority rank, lower is more important.
func (p Priority) SortOrder() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Comment is one entry in a task's discussion thread. The thread is
// append-only; entries are kept in insertion order.
type Comment struct {
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// CodeRef points at a file relevant to a task.
type CodeRef struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// Task is the unit of work tracked by roster. The ID is assigned once at
// creation and never reused; ClaimedBy/ClaimedAt are set exactly while
// Status is pending.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Coordination fields.
	ClaimedBy string     `json:"claimed_by,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	// Relationship fields.
	DependsOn []string `json:"depends_on,omitempty"`

	// Collaboration fields for humans and agents.
	Discussion         []Comment `json:"discussion,omitempty"`
	AcceptanceCriteria []string  `json:"acceptance_criteria,omitempty"`
	CodeRefs           []CodeRef `json:"code_refs,omitempty"`
}

// ShortID returns the display prefix of the task ID.
func (t *Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

// IsClaimed reports whether the task is currently claimed by an actor.
func (t *Task) IsClaimed() bool {
	return t.ClaimedBy != ""
}

// IsOverdue reports whether the task is open and past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueAt == nil || !t.Status.Open() {
		return false
	}
	return now.After(*t.DueAt)
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Clone returns a deep copy. Mutating the copy never touches the
// snapshot the original was loaded from.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueAt != nil {
		due := *t.DueAt
		c.DueAt = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		c.CompletedAt = &done
	}
	if t.ClaimedAt != nil {
		claimed := *t.ClaimedAt
		c.ClaimedAt = &claimed
	}
	c.Tags = slices.Clone(t.Tags)
	c.DependsOn = slices.Clone(t.DependsOn)
	c.Discussion = slices.Clone(t.Discussion)
	c.AcceptanceCriteria = slices.Clone(t.AcceptanceCriteria)
	c.CodeRefs = slices.Clone(t.CodeRefs)
	return &c
}

// NormalizeTags deduplicates and sorts a tag list, dropping empties and
// a leading "+" (the CLI accepts +tag syntax).
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "+")
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
