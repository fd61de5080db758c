// Package tracker implements the task lifecycle on top of the store:
// the claim state machine, the bounded commit-retry discipline, and the
// event emitted by every successful transition.
//
// The state machine per task:
//
//	backlog  --claim-->   pending
//	pending  --release--> backlog
//	pending  --done-->    completed
//	backlog  --done-->    completed   (unless require_claim policy)
//	backlog|pending|completed --archive--> archived (terminal)
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/task"
)

// Tracker performs one logical operation per call: load snapshot,
// validate the transition, commit atomically, append one event.
type Tracker struct {
	store        *store.Store
	weights      task.Weights
	requireClaim bool
	now          func() time.Time
}

// Options configures a Tracker.
type Options struct {
	Logger *slog.Logger
	// Weights overrides the urgency constants; nil uses the defaults.
	Weights *task.Weights
	// RequireClaim forbids completing a backlog task without claiming
	// it first.
	RequireClaim bool
}

// New returns a tracker over the .roster directory at dir.
func New(dir string, opts Options) *Tracker {
	w := task.DefaultWeights()
	if opts.Weights != nil {
		w = *opts.Weights
	}
	return &Tracker{
		store:        store.Open(dir, opts.Logger),
		weights:      w,
		requireClaim: opts.RequireClaim,
		now:          time.Now,
	}
}

// Store exposes the underlying store for read-only collaborators
// (events display, watch, verify).
func (tr *Tracker) Store() *store.Store { return tr.store }

// Weights returns the urgency constants in effect.
func (tr *Tracker) Weights() task.Weights { return tr.weights }

// mutate runs one transition against the freshest snapshot. On a commit
// conflict it re-reads and re-validates exactly once; a second conflict
// surfaces as ErrStorageConflict. fn sees a clone of the current task,
// validates the precondition, mutates the clone, and returns the event
// describing the change.
func (tr *Tracker) mutate(idOrPrefix string, fn func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error)) (*task.Task, *store.Event, error) {
	for attempt := 0; ; attempt++ {
		snap, err := tr.store.Load()
		if err != nil {
			return nil, nil, err
		}
		cur, err := snap.Find(idOrPrefix)
		if err != nil {
			return nil, nil, err
		}

		now := tr.now().UTC()
		next := cur.Clone()
		ev, err := fn(snap, next, now)
		if err != nil {
			return nil, nil, err
		}
		next.UpdatedAt = now
		ev.Timestamp = now
		ev.TaskID = next.ID
		if ev.Kind == store.KindCreated || ev.Kind == store.KindUpdated {
			ev.Payload.Task = next.Clone()
		}
		snap.Tasks[next.ID] = next

		err = tr.store.Commit(snap, ev)
		if err == nil {
			return next, ev, nil
		}
		if !errors.Is(err, store.ErrConflict) || attempt >= 1 {
			if errors.Is(err, store.ErrConflict) {
				return nil, nil, ErrStorageConflict
			}
			return nil, nil, err
		}
		// Lost the race once: reload and re-validate before the single
		// automatic retry.
	}
}

// AddRequest carries the validated arguments for a new task. The CLI
// layer parses raw input; the tracker never sees command-line text.
type AddRequest struct {
	Title              string
	Description        string
	Priority           task.Priority
	DueAt              *time.Time
	Tags               []string
	DependsOn          []string // ids or unique prefixes
	AcceptanceCriteria []string
	CodeRefs           []task.CodeRef
	Actor              string
}

// Add creates a task in backlog and logs a created event.
func (tr *Tracker) Add(req AddRequest) (*task.Task, *store.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, nil, ErrEmptyTitle
	}

	for attempt := 0; ; attempt++ {
		snap, err := tr.store.Load()
		if err != nil {
			return nil, nil, err
		}

		deps, err := resolveDeps(snap, req.DependsOn)
		if err != nil {
			return nil, nil, err
		}

		now := tr.now().UTC()
		t := &task.Task{
			ID:                 uuid.NewString(),
			Title:              strings.TrimSpace(req.Title),
			Description:        req.Description,
			Status:             task.StatusBacklog,
			Priority:           req.Priority,
			Tags:               task.NormalizeTags(req.Tags),
			DueAt:              req.DueAt,
			CreatedAt:          now,
			UpdatedAt:          now,
			DependsOn:          deps,
			AcceptanceCriteria: req.AcceptanceCriteria,
			CodeRefs:           req.CodeRefs,
		}
		snap.Tasks[t.ID] = t

		ev := &store.Event{
			Timestamp: now,
			Actor:     req.Actor,
			Kind:      store.KindCreated,
			TaskID:    t.ID,
			Payload:   store.Payload{Task: t.Clone()},
		}
		err = tr.store.Commit(snap, ev)
		if err == nil {
			return t, ev, nil
		}
		if !errors.Is(err, store.ErrConflict) || attempt >= 1 {
			if errors.Is(err, store.ErrConflict) {
				return nil, nil, ErrStorageConflict
			}
			return nil, nil, err
		}
	}
}

// resolveDeps maps dependency prefixes to full task ids.
func resolveDeps(snap *store.Snapshot, deps []string) ([]string, error) {
	if len(deps) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(deps))
	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		t, err := snap.Find(dep)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", dep, err)
		}
		if !seen[t.ID] {
			seen[t.ID] = true
			out = append(out, t.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Get resolves a task by id or unique prefix.
func (tr *Tracker) Get(idOrPrefix string) (*task.Task, error) {
	snap, err := tr.store.Load()
	if err != nil {
		return nil, err
	}
	return snap.Find(idOrPrefix)
}

// Claim moves a backlog task to pending under actor. Exactly one of two
// racing claims succeeds; the loser observes AlreadyClaimedError.
func (tr *Tracker) Claim(idOrPrefix, actor string) (*task.Task, *store.Event, error) {
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		switch t.Status {
		case task.StatusBacklog:
		case task.StatusPending:
			return nil, &AlreadyClaimedError{TaskID: t.ID, By: t.ClaimedBy}
		default:
			return nil, &InvalidTransitionError{TaskID: t.ID, From: t.Status, Op: "claim"}
		}
		t.Status = task.StatusPending
		t.ClaimedBy = actor
		t.ClaimedAt = &now
		return &store.Event{
			Actor:   actor,
			Kind:    store.KindClaimed,
			Payload: store.Payload{ClaimedBy: actor},
		}, nil
	})
}

// Release returns a pending task to backlog. Only the claimant may
// release its own claim.
func (tr *Tracker) Release(idOrPrefix, actor string) (*task.Task, *store.Event, error) {
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		if t.Status != task.StatusPending {
			return nil, &InvalidTransitionError{TaskID: t.ID, From: t.Status, Op: "release"}
		}
		if t.ClaimedBy != actor {
			return nil, &NotClaimantError{TaskID: t.ID, Actor: actor, ClaimedBy: t.ClaimedBy}
		}
		t.Status = task.StatusBacklog
		t.ClaimedBy = ""
		t.ClaimedAt = nil
		return &store.Event{
			Actor: actor,
			Kind:  store.KindReleased,
		}, nil
	})
}

// Done completes a task from backlog or pending and clears any claim.
func (tr *Tracker) Done(idOrPrefix, actor string) (*task.Task, *store.Event, error) {
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		from := t.Status
		switch from {
		case task.StatusPending:
		case task.StatusBacklog:
			if tr.requireClaim {
				return nil, &InvalidTransitionError{TaskID: t.ID, From: from, Op: "complete unclaimed"}
			}
		default:
			return nil, &InvalidTransitionError{TaskID: t.ID, From: from, Op: "complete"}
		}
		t.Status = task.StatusCompleted
		t.CompletedAt = &now
		t.ClaimedBy = ""
		t.ClaimedAt = nil
		return &store.Event{
			Actor:   actor,
			Kind:    store.KindStatusChanged,
			Payload: store.Payload{From: from, To: task.StatusCompleted},
		}, nil
	})
}

// Archive moves any non-terminal task to archived. History is kept.
func (tr *Tracker) Archive(idOrPrefix, actor string) (*task.Task, *store.Event, error) {
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		if t.Status == task.StatusArchived {
			return nil, &InvalidTransitionError{TaskID: t.ID, From: t.Status, Op: "archive"}
		}
		from := t.Status
		t.Status = task.StatusArchived
		t.ClaimedBy = ""
		t.ClaimedAt = nil
		return &store.Event{
			Actor:   actor,
			Kind:    store.KindArchived,
			Payload: store.Payload{From: from},
		}, nil
	})
}

// Comment appends to a task's discussion without touching its status.
func (tr *Tracker) Comment(idOrPrefix, author, text string) (*task.Task, *store.Event, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, errors.New("comment text must not be empty")
	}
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		c := task.Comment{Author: author, Timestamp: now, Text: text}
		t.Discussion = append(t.Discussion, c)
		return &store.Event{
			Actor:   author,
			Kind:    store.KindCommented,
			Payload: store.Payload{Comment: &c},
		}, nil
	})
}

// EditRequest carries optional field updates; nil pointers leave the
// field untouched.
type EditRequest struct {
	Title       *string
	Description *string
	Priority    *task.Priority
	DueAt       *time.Time
	ClearDue    bool
	Tags        []string // replace the whole set
	AddTags     []string
	RemoveTags  []string
	Criteria    []string // replace acceptance criteria
	AddRefs     []task.CodeRef
	DependsOn   []string // replace dependency set (ids or prefixes)
}

// Edit updates task fields and logs a single updated event carrying the
// resulting record.
func (tr *Tracker) Edit(idOrPrefix string, req EditRequest, actor string) (*task.Task, *store.Event, error) {
	return tr.mutate(idOrPrefix, func(snap *store.Snapshot, t *task.Task, now time.Time) (*store.Event, error) {
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return nil, ErrEmptyTitle
			}
			t.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Priority != nil {
			t.Priority = *req.Priority
		}
		if req.DueAt != nil {
			t.DueAt = req.DueAt
		}
		if req.ClearDue {
			t.DueAt = nil
		}
		if req.Tags != nil {
			t.Tags = task.NormalizeTags(req.Tags)
		}
		if len(req.AddTags) > 0 {
			t.Tags = task.NormalizeTags(append(t.Tags, req.AddTags...))
		}
		if len(req.RemoveTags) > 0 {
			drop := make(map[string]bool, len(req.RemoveTags))
			for _, tag := range req.RemoveTags {
				drop[strings.TrimPrefix(tag, "+")] = true
			}
			var kept []string
			for _, tag := range t.Tags {
				if !drop[tag] {
					kept = append(kept, tag)
				}
			}
			t.Tags = kept
		}
		if req.Criteria != nil {
			t.AcceptanceCriteria = req.Criteria
		}
		if len(req.AddRefs) > 0 {
			t.CodeRefs = append(t.CodeRefs, req.AddRefs...)
		}
		if req.DependsOn != nil {
			deps, err := resolveDeps(snap, req.DependsOn)
			if err != nil {
				return nil, err
			}
			for _, dep := range deps {
				if dep == t.ID {
					return nil, ErrSelfDependency
				}
			}
			t.DependsOn = deps
		}
		return &store.Event{
			Actor: actor,
			Kind:  store.KindUpdated,
		}, nil
	})
}
