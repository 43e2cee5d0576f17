package models

import "slices"

// Habit is a tracked practice owned by a single user
type Habit struct {
	ID            int      `json:"id"`
	UserID        int      `json:"userId"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	CurrentStreak int      `json:"currentStreak"`
	LongestStreak int      `json:"longestStreak"`
	LastDoneDate  *string  `json:"lastDoneDate"` // YYYY-MM-DD, null until first completion
	History       []string `json:"history"`      // completion days in insertion order
}

// LastDone returns the last completion day, or "" if the habit was never done.
func (h Habit) LastDone() string {
	if h.LastDoneDate == nil {
		return ""
	}
	return *h.LastDoneDate
}

// DoneOn reports whether day is present in the habit's history.
func (h Habit) DoneOn(day string) bool {
	return slices.Contains(h.History, day)
}

// Clone returns a copy that shares no memory with h.
func (h Habit) Clone() Habit {
	c := h
	if h.LastDoneDate != nil {
		d := *h.LastDoneDate
		c.LastDoneDate = &d
	}
	c.History = make([]string, len(h.History))
	copy(c.History, h.History)
	return c
}
