// Package streak computes habit streak transitions and the derived views
// (completion strip, per-user summary) clients render.
package streak

import (
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/utils"
)

// Outcome describes which branch a MarkDone transition took.
type Outcome string

const (
	// AlreadyDone means the habit was already completed today; nothing changed.
	AlreadyDone Outcome = "already_done"
	// Continued means the previous completion was yesterday.
	Continued Outcome = "continued"
	// Started means a new streak began (never done, or a gap of any size).
	Started Outcome = "started"
)

// Yesterday returns the calendar day before today.
func Yesterday(today string) (string, error) {
	return utils.AddDays(today, -1)
}

// MarkDone applies the "mark done" transition for today and returns the
// updated habit. The input habit is never modified.
//
// Days are compared by exact string equality: a gap of two days resets the
// streak the same way a gap of two hundred does.
func MarkDone(h models.Habit, today string) (models.Habit, Outcome, error) {
	yesterday, err := Yesterday(today)
	if err != nil {
		return h, "", err
	}

	if h.LastDone() == today {
		return h.Clone(), AlreadyDone, nil
	}

	next := h.Clone()

	outcome := Started
	if next.LastDone() == yesterday {
		next.CurrentStreak++
		outcome = Continued
	} else {
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	day := today
	next.LastDoneDate = &day

	if !next.DoneOn(today) {
		next.History = append(next.History, today)
	}

	return next, outcome, nil
}
