package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictDuplicateEmail   ConflictType = "duplicate_email"
	ConflictInvalidStreak    ConflictType = "invalid_streak"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictMissingHistory   ConflictType = "missing_history_entry"
	ConflictDuplicateHistory ConflictType = "duplicate_history_entry"
	ConflictOrphanedRecord   ConflictType = "orphaned_record"
	ConflictBlankName        ConflictType = "blank_name"
)

// Conflict represents a detected problem in the data document
type Conflict struct {
	Type        ConflictType
	Description string
	Collection  string // users, habits or members
	IDs         []int
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a data document for records the service would never
// produce itself, e.g. after a hand edit of the data file.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDocument runs every check over doc.
func (v *Validator) ValidateDocument(doc models.Document) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	add := func(c Conflict) { result.Conflicts = append(result.Conflicts, c) }

	userIDs := map[int]bool{}
	for _, id := range duplicateIDs(doc.Users, func(u models.User) int { return u.ID }) {
		add(Conflict{Type: ConflictDuplicateID, Collection: "users", IDs: []int{id},
			Description: fmt.Sprintf("Duplicate user id %d", id)})
	}
	for _, id := range duplicateIDs(doc.Habits, func(h models.Habit) int { return h.ID }) {
		add(Conflict{Type: ConflictDuplicateID, Collection: "habits", IDs: []int{id},
			Description: fmt.Sprintf("Duplicate habit id %d", id)})
	}
	for _, id := range duplicateIDs(doc.Members, func(m models.Member) int { return m.ID }) {
		add(Conflict{Type: ConflictDuplicateID, Collection: "members", IDs: []int{id},
			Description: fmt.Sprintf("Duplicate member id %d", id)})
	}

	emails := map[string][]int{}
	var emailOrder []string
	for _, u := range doc.Users {
		userIDs[u.ID] = true
		key := strings.ToLower(strings.TrimSpace(u.Email))
		if _, seen := emails[key]; !seen {
			emailOrder = append(emailOrder, key)
		}
		emails[key] = append(emails[key], u.ID)
		if key == "" {
			add(Conflict{Type: ConflictBlankName, Collection: "users", IDs: []int{u.ID},
				Description: fmt.Sprintf("User %d has no email", u.ID)})
		}
	}
	for _, key := range emailOrder {
		if ids := emails[key]; key != "" && len(ids) > 1 {
			add(Conflict{Type: ConflictDuplicateEmail, Collection: "users", IDs: ids,
				Description: fmt.Sprintf("Email %q is shared by users %v", key, ids)})
		}
	}

	for _, h := range doc.Habits {
		v.validateHabit(h, userIDs, add)
	}

	for _, m := range doc.Members {
		if strings.TrimSpace(m.Name) == "" {
			add(Conflict{Type: ConflictBlankName, Collection: "members", IDs: []int{m.ID},
				Description: fmt.Sprintf("Member %d has a blank name", m.ID)})
		}
		if !userIDs[m.UserID] {
			add(Conflict{Type: ConflictOrphanedRecord, Collection: "members", IDs: []int{m.ID},
				Description: fmt.Sprintf("Member %d belongs to unknown user %d", m.ID, m.UserID)})
		}
	}

	return result
}

func (v *Validator) validateHabit(h models.Habit, userIDs map[int]bool, add func(Conflict)) {
	conflict := func(t ConflictType, format string, args ...any) {
		add(Conflict{Type: t, Collection: "habits", IDs: []int{h.ID},
			Description: fmt.Sprintf("Habit %d (%q) ", h.ID, h.Name) + fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(h.Name) == "" {
		conflict(ConflictBlankName, "has a blank name")
	}
	if !userIDs[h.UserID] {
		conflict(ConflictOrphanedRecord, "belongs to unknown user %d", h.UserID)
	}

	if h.CurrentStreak < 0 || h.LongestStreak < 0 {
		conflict(ConflictInvalidStreak, "has a negative streak (current %d, longest %d)", h.CurrentStreak, h.LongestStreak)
	}
	if h.LongestStreak < h.CurrentStreak {
		conflict(ConflictInvalidStreak, "has longest streak %d below current streak %d", h.LongestStreak, h.CurrentStreak)
	}
	if h.CurrentStreak > 0 && h.LastDoneDate == nil {
		conflict(ConflictInvalidStreak, "has current streak %d but was never done", h.CurrentStreak)
	}

	seen := map[string]bool{}
	for _, day := range h.History {
		if !utils.IsValidDate(day) {
			conflict(ConflictInvalidDate, "has invalid history date %q", day)
		}
		if seen[day] {
			conflict(ConflictDuplicateHistory, "lists %s more than once in its history", day)
		}
		seen[day] = true
	}

	if h.LastDoneDate != nil {
		last := *h.LastDoneDate
		if !utils.IsValidDate(last) {
			conflict(ConflictInvalidDate, "has invalid lastDoneDate %q", last)
		}
		if !seen[last] {
			conflict(ConflictMissingHistory, "lastDoneDate %s is missing from its history", last)
		}
	}
}

func duplicateIDs[T any](records []T, id func(T) int) []int {
	counts := map[int]int{}
	for _, r := range records {
		counts[id(r)]++
	}
	var dups []int
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	slices.Sort(dups)
	return dups
}
