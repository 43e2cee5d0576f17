package streak

import (
	"testing"

	"github.com/julianstephens/habitchain/internal/models"
)

func TestLastNDays(t *testing.T) {
	days, err := LastNDays("2024-03-02", 7)
	if err != nil {
		t.Fatalf("LastNDays() error: %v", err)
	}
	want := []string{"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(days) != len(want) {
		t.Fatalf("len = %d, want %d", len(days), len(want))
	}
	for i, d := range days {
		if d.Date != want[i] {
			t.Errorf("days[%d] = %q, want %q", i, d.Date, want[i])
		}
		if d.IsToday != (i == len(want)-1) {
			t.Errorf("days[%d].IsToday = %v", i, d.IsToday)
		}
	}

	empty, err := LastNDays("2024-03-02", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("LastNDays(0) = %v, %v", empty, err)
	}
	if _, err := LastNDays("2024-03-02", -1); err == nil {
		t.Error("expected error for negative count")
	}
	if _, err := LastNDays("bad", 3); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestStrip(t *testing.T) {
	h := models.Habit{History: []string{"2024-04-01", "2024-05-08", "2024-05-10"}}

	dots, err := Strip(h, "2024-05-10", 3)
	if err != nil {
		t.Fatalf("Strip() error: %v", err)
	}
	wantDone := []bool{true, false, true}
	for i, d := range dots {
		if d.Done != wantDone[i] {
			t.Errorf("dots[%d] (%s).Done = %v, want %v", i, d.Date, d.Done, wantDone[i])
		}
	}
	if !dots[2].IsToday {
		t.Error("last dot should be today")
	}
}

func TestSummarize(t *testing.T) {
	today := "2024-05-10"
	habits := []models.Habit{
		{ID: 1, CurrentStreak: 3, LastDoneDate: day(today)},
		{ID: 2, CurrentStreak: 1, LastDoneDate: day("2024-05-09")},
		{ID: 3},
	}

	s := Summarize(habits, today)
	if s.TotalHabits != 3 || s.DoneToday != 1 || s.StreakSum != 4 || s.Today != today {
		t.Errorf("Summarize() = %+v", s)
	}

	if empty := Summarize(nil, today); empty.TotalHabits != 0 || empty.StreakSum != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}
