package tracker

import (
	"errors"
	"fmt"

	"github.com/rosterhq/roster/internal/task"
)

var (
	// ErrStorageConflict means a commit conflicted twice in a row —
	// the automatic retry budget is one, never an unbounded loop.
	ErrStorageConflict = errors.New("storage conflict: lost two commit races, rerun the command")

	// ErrEmptyTitle rejects tasks without a title.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrSelfDependency rejects a task depending on itself.
	ErrSelfDependency = errors.New("task cannot depend on itself")
)

// AlreadyClaimedError means a claim lost the race: the task is already
// pending under another actor.
type AlreadyClaimedError struct {
	TaskID string
	By     string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("task %s is already claimed by %s", shortID(e.TaskID), e.By)
}

// NotClaimantError means an actor tried to release a claim it does not
// hold.
type NotClaimantError struct {
	TaskID    string
	Actor     string
	ClaimedBy string
}

func (e *NotClaimantError) Error() string {
	return fmt.Sprintf("task %s is claimed by %s, not %s", shortID(e.TaskID), e.ClaimedBy, e.Actor)
}

// InvalidTransitionError means the requested status change is illegal
// from the task's current state.
type InvalidTransitionError struct {
	TaskID string
	From   task.Status
	Op     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s task %s from status %s", e.Op, shortID(e.TaskID), e.From)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
