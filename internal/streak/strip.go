package streak

import (
	"fmt"

	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/utils"
)

// Day is one calendar day in a window ending today.
type Day struct {
	Date    string
	IsToday bool
}

// Dot is a Day annotated with whether the habit was completed on it.
type Dot struct {
	Day
	Done bool
}

// LastNDays returns the n calendar days ending at today, oldest first.
func LastNDays(today string, n int) ([]Day, error) {
	if n < 0 {
		return nil, fmt.Errorf("day count must not be negative: %d", n)
	}
	days := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		d, err := utils.AddDays(today, -i)
		if err != nil {
			return nil, err
		}
		days = append(days, Day{Date: d, IsToday: i == 0})
	}
	return days, nil
}

// Strip returns the habit's completion dots for the n days ending at today.
func Strip(h models.Habit, today string, n int) ([]Dot, error) {
	days, err := LastNDays(today, n)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(h.History))
	for _, d := range h.History {
		done[d] = true
	}
	dots := make([]Dot, len(days))
	for i, d := range days {
		dots[i] = Dot{Day: d, Done: done[d.Date]}
	}
	return dots, nil
}

// Summary aggregates a user's habits for the stats bar.
type Summary struct {
	TotalHabits int    `json:"totalHabits"`
	DoneToday   int    `json:"doneToday"`
	StreakSum   int    `json:"streakSum"`
	Today       string `json:"today"`
}

// Summarize computes the totals shown above a user's habit list.
func Summarize(habits []models.Habit, today string) Summary {
	s := Summary{TotalHabits: len(habits), Today: today}
	for _, h := range habits {
		if h.LastDone() == today {
			s.DoneToday++
		}
		s.StreakSum += h.CurrentStreak
	}
	return s
}
