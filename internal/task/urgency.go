package task

import (
	"sort"
	"time"
)

// Weights holds the urgency scoring constants. They are policy, not
// contract: projects can tune them in .roster/config.yaml.
type Weights struct {
	Base          float64 `yaml:"base" json:"base"`
	High          float64 `yaml:"high" json:"high"`
	Medium        float64 `yaml:"medium" json:"medium"`
	Low           float64 `yaml:"low" json:"low"`
	Overdue       float64 `yaml:"overdue" json:"overdue"`
	OverduePerDay float64 `yaml:"overdue_per_day" json:"overdue_per_day"`
	DueToday      float64 `yaml:"due_today" json:"due_today"`
	DueSoon       float64 `yaml:"due_soon" json:"due_soon"`
	TagBonus      float64 `yaml:"tag_bonus" json:"tag_bonus"`
	AgePerDay     float64 `yaml:"age_per_day" json:"age_per_day"`
	ClaimPenalty  float64 `yaml:"claim_penalty" json:"claim_penalty"`
	BlockPenalty  float64 `yaml:"block_penalty" json:"block_penalty"`
}

// DefaultWeights returns the stock urgency constants.
func DefaultWeights() Weights {
	return Weights{
		Base:          1.0,
		High:          6.0,
		Medium:        3.0,
		Low:           1.0,
		Overdue:       5.0,
		OverduePerDay: 0.5,
		DueToday:      4.0,
		DueSoon:       3.0,
		TagBonus:      0.5,
		AgePerDay:     0.05,
		ClaimPenalty:  2.0,
		BlockPenalty:  3.0,
	}
}

// Urgency computes the ranking score for an open task. It is a pure
// function of the task, the clock, and the weights; blocked says whether
// any dependency of the task is still incomplete. Completed and archived
// tasks score zero and are excluded from ranking.
//
// The score is monotone in priority (high >= medium >= low >= none) and
// strictly increases as the due date approaches or passes now.
func Urgency(t *Task, now time.Time, blocked bool, w Weights) float64 {
	if !t.Status.Open() {
		return 0
	}

	score := w.Base

	switch t.Priority {
	case PriorityHigh:
		score += w.High
	case PriorityMedium:
		score += w.Medium
	case PriorityLow:
		score += w.Low
	}

	score += dueContribution(t.DueAt, now, w)
	score += float64(len(t.Tags)) * w.TagBonus
	score += now.Sub(t.CreatedAt).Hours() / 24 * w.AgePerDay

	if t.IsClaimed() {
		score -= w.ClaimPenalty
	}
	if blocked {
		score -= w.BlockPenalty
	}

	return score
}

// dueContribution maps days-until-due onto a curve that strictly grows
// as the due date nears:
//
//	overdue by d days:  Overdue + OverduePerDay*d
//	due within a day:   DueToday + fraction of the day already gone
//	due in d < 30 days: DueSoon / d
//	further out / none: 0
func dueContribution(due *time.Time, now time.Time, w Weights) float64 {
	if due == nil {
		return 0
	}
	days := due.Sub(now).Hours() / 24
	switch {
	case days < 0:
		return w.Overdue + w.OverduePerDay*-days
	case days < 1:
		return w.DueToday + (1 - days)
	case days < 30:
		return w.DueSoon / days
	}
	return 0
}

// Blocked reports whether t waits on a dependency that is not completed.
// Dependencies that no longer resolve are ignored rather than blocking
// forever.
func Blocked(t *Task, byID map[string]*Task) bool {
	for _, dep := range t.DependsOn {
		d, ok := byID[dep]
		if !ok {
			continue
		}
		if d.Status != StatusCompleted && d.Status != StatusArchived {
			return true
		}
	}
	return false
}

// Ranked is a task paired with its computed urgency.
type Ranked struct {
	*Task
	Urgency float64
	Blocked bool
}

// Rank scores the open tasks in byID and returns them ordered by urgency
// descending. Ties break deterministically: older created_at first, then
// lexical ID.
func Rank(byID map[string]*Task, now time.Time, w Weights) []Ranked {
	out := make([]Ranked, 0, len(byID))
	for _, t := range byID {
		if !t.Status.Open() {
			continue
		}
		blocked := Blocked(t, byID)
		out = append(out, Ranked{
			Task:    t,
			Urgency: Urgency(t, now, blocked, w),
			Blocked: blocked,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Urgency != out[j].Urgency {
			return out[i].Urgency > out[j].Urgency
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
