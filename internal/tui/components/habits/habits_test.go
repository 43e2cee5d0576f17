package habits

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitchain/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDotStrip(t *testing.T) {
	h := models.Habit{History: []string{"2024-05-01", "2024-05-03", "2024-05-07"}}

	got := DotStrip(h, "2024-05-07")
	want := "● · ● · · · [●]"
	if got != want {
		t.Errorf("DotStrip() = %q, want %q", got, want)
	}

	if got := DotStrip(models.Habit{}, "2024-05-07"); got != "· · · · · · [·]" {
		t.Errorf("DotStrip(empty) = %q", got)
	}
	if got := DotStrip(h, "bad"); got != "" {
		t.Errorf("DotStrip(bad today) = %q", got)
	}
}

func TestItem(t *testing.T) {
	tests := []struct {
		name      string
		habit     models.Habit
		wantTitle string
		wantDone  bool
	}{
		{
			name:      "never done",
			habit:     models.Habit{Name: "Run", Category: "Health"},
			wantTitle: "○ Run",
		},
		{
			name:      "streak not yet done today",
			habit:     models.Habit{Name: "Run", CurrentStreak: 2, LongestStreak: 2, LastDoneDate: strPtr("2024-05-06")},
			wantTitle: "○ Run  🔥 on a roll",
		},
		{
			name:      "done today",
			habit:     models.Habit{Name: "Run", CurrentStreak: 3, LongestStreak: 3, LastDoneDate: strPtr("2024-05-07")},
			wantTitle: "✓ Run  🔥 on a roll",
			wantDone:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := Item{Habit: tt.habit, Today: "2024-05-07"}
			if i.Title() != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", i.Title(), tt.wantTitle)
			}
			if i.DoneToday() != tt.wantDone {
				t.Errorf("DoneToday() = %v", i.DoneToday())
			}
			if strings.Contains(i.Description(), "done for today") != tt.wantDone {
				t.Errorf("Description() = %q", i.Description())
			}
		})
	}
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestUpdate_KeyMessages(t *testing.T) {
	habits := []models.Habit{
		{ID: 4, Name: "Run", LastDoneDate: strPtr("2024-05-07"), History: []string{"2024-05-07"}},
		{ID: 5, Name: "Read"},
	}
	m := New(habits, "2024-05-07", 80, 20)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if _, ok := runCmd(cmd).(AddHabitMsg); !ok {
		t.Error("'a' should request the add form")
	}

	// first item is already done today
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if msg := runCmd(cmd); msg != nil {
		t.Errorf("mark on a done habit produced %#v", msg)
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if msg, ok := runCmd(cmd).(DeleteHabitMsg); !ok || msg.ID != 4 || msg.Name != "Run" {
		t.Errorf("delete produced %#v", msg)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if msg, ok := runCmd(cmd).(MarkHabitMsg); !ok || msg.ID != 5 {
		t.Errorf("mark produced %#v", msg)
	}
}

func TestView_Empty(t *testing.T) {
	m := New(nil, "2024-05-07", 80, 20)
	if !strings.Contains(m.View(), "No habits yet") {
		t.Errorf("View() = %q", m.View())
	}
	m.SetHabits([]models.Habit{{ID: 1, Name: "Run"}}, "2024-05-07")
	if len(m.Items()) != 1 {
		t.Errorf("Items() = %d", len(m.Items()))
	}
}
