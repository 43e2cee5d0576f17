package streak

import (
	"reflect"
	"testing"

	"github.com/julianstephens/habitchain/internal/models"
)

func day(s string) *string { return &s }

func TestMarkDone_NeverDone(t *testing.T) {
	h := models.Habit{ID: 1, UserID: 1, Name: "Run", Category: "General", History: []string{}}

	got, outcome, err := MarkDone(h, "2024-05-10")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if outcome != Started {
		t.Errorf("outcome = %q, want %q", outcome, Started)
	}
	if got.CurrentStreak != 1 || got.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", got.CurrentStreak, got.LongestStreak)
	}
	if got.LastDone() != "2024-05-10" {
		t.Errorf("LastDone() = %q", got.LastDone())
	}
	if !reflect.DeepEqual(got.History, []string{"2024-05-10"}) {
		t.Errorf("History = %v", got.History)
	}
}

func TestMarkDone_NilHistory(t *testing.T) {
	got, _, err := MarkDone(models.Habit{ID: 1}, "2024-05-10")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if !reflect.DeepEqual(got.History, []string{"2024-05-10"}) {
		t.Errorf("History = %v", got.History)
	}
}

func TestMarkDone_SameDayIsIdempotent(t *testing.T) {
	h := models.Habit{
		ID:            1,
		CurrentStreak: 4,
		LongestStreak: 9,
		LastDoneDate:  day("2024-05-10"),
		History:       []string{"2024-05-07", "2024-05-08", "2024-05-09", "2024-05-10"},
	}

	got, outcome, err := MarkDone(h, "2024-05-10")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if outcome != AlreadyDone {
		t.Errorf("outcome = %q, want %q", outcome, AlreadyDone)
	}
	if !reflect.DeepEqual(got, h) {
		t.Errorf("habit changed on repeat mark:\n got  %+v\n want %+v", got, h)
	}
}

func TestMarkDone_Transitions(t *testing.T) {
	tests := []struct {
		name        string
		lastDone    *string
		current     int
		longest     int
		today       string
		wantCurrent int
		wantLongest int
		wantOutcome Outcome
	}{
		{"continues from yesterday", day("2024-05-09"), 3, 3, "2024-05-10", 4, 4, Continued},
		{"continues below longest", day("2024-05-09"), 2, 10, "2024-05-10", 3, 10, Continued},
		{"continues across month end", day("2024-02-29"), 1, 1, "2024-03-01", 2, 2, Continued},
		{"continues across year end", day("2023-12-31"), 5, 5, "2024-01-01", 6, 6, Continued},
		{"two day gap resets", day("2024-05-08"), 7, 7, "2024-05-10", 1, 7, Started},
		{"long gap resets", day("2023-01-01"), 30, 45, "2024-05-10", 1, 45, Started},
		{"absent resets", nil, 5, 5, "2024-05-10", 1, 5, Started},
		{"reset raises zero longest", day("2024-04-01"), 0, 0, "2024-05-10", 1, 1, Started},
		{"future last done resets", day("2024-05-11"), 2, 2, "2024-05-10", 1, 2, Started},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{
				ID:            1,
				CurrentStreak: tt.current,
				LongestStreak: tt.longest,
				LastDoneDate:  tt.lastDone,
				History:       []string{},
			}
			if tt.lastDone != nil {
				h.History = []string{*tt.lastDone}
			}

			got, outcome, err := MarkDone(h, tt.today)
			if err != nil {
				t.Fatalf("MarkDone() error: %v", err)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", outcome, tt.wantOutcome)
			}
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Errorf("longest %d < current %d", got.LongestStreak, got.CurrentStreak)
			}
			if got.LastDone() != tt.today {
				t.Errorf("LastDone() = %q, want %q", got.LastDone(), tt.today)
			}
			if !got.DoneOn(tt.today) {
				t.Errorf("history %v missing %s", got.History, tt.today)
			}
		})
	}
}

func TestMarkDone_DoesNotAliasInput(t *testing.T) {
	h := models.Habit{ID: 1, LastDoneDate: day("2024-05-09"), History: []string{"2024-05-09"}, CurrentStreak: 1, LongestStreak: 1}

	got, _, err := MarkDone(h, "2024-05-10")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if len(h.History) != 1 || h.LastDone() != "2024-05-09" || h.CurrentStreak != 1 {
		t.Errorf("input habit was modified: %+v", h)
	}
	got.History[0] = "mutated"
	if h.History[0] != "2024-05-09" {
		t.Error("result history aliases input history")
	}
}

func TestMarkDone_HistoryKeepsOrderAndNoDuplicates(t *testing.T) {
	// today already in history but lastDoneDate differs (e.g. hand-edited file)
	h := models.Habit{ID: 1, LastDoneDate: day("2024-05-01"), History: []string{"2024-05-01", "2024-05-10"}}

	got, _, err := MarkDone(h, "2024-05-10")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if !reflect.DeepEqual(got.History, []string{"2024-05-01", "2024-05-10"}) {
		t.Errorf("History = %v", got.History)
	}
}

func TestMarkDone_InvalidToday(t *testing.T) {
	if _, _, err := MarkDone(models.Habit{ID: 1}, "10/05/2024"); err == nil {
		t.Error("expected error for malformed today")
	}
}

func TestMarkDone_ConsecutiveDaysThenGap(t *testing.T) {
	h := models.Habit{ID: 1, UserID: 1, Name: "Run", Category: "General", History: []string{}}

	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		var err error
		h, _, err = MarkDone(h, d)
		if err != nil {
			t.Fatalf("MarkDone(%s) error: %v", d, err)
		}
	}
	if h.CurrentStreak != 3 || h.LongestStreak != 3 || len(h.History) != 3 {
		t.Fatalf("after three days: %+v", h)
	}

	h, _, err := MarkDone(h, "2024-05-05")
	if err != nil {
		t.Fatalf("MarkDone() error: %v", err)
	}
	if h.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", h.CurrentStreak)
	}
	if h.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", h.LongestStreak)
	}
	if len(h.History) != 4 {
		t.Errorf("History = %v, want 4 entries", h.History)
	}
}
