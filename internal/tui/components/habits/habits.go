package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID int
}

type DeleteHabitMsg struct {
	ID   int
	Name string
}

type Item struct {
	Habit models.Habit
	Today string
}

// DoneToday reports whether the habit was already marked on Today.
func (i Item) DoneToday() bool {
	return i.Today != "" && i.Habit.LastDone() == i.Today
}

func (i Item) Title() string {
	title := "○ " + i.Habit.Name
	if i.DoneToday() {
		title = "✓ " + i.Habit.Name
	}
	if i.Habit.CurrentStreak > 0 {
		title += "  🔥 on a roll"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | streak %d | longest %d | %s",
		i.Habit.Category, i.Habit.CurrentStreak, i.Habit.LongestStreak, DotStrip(i.Habit, i.Today))
	if i.DoneToday() {
		desc += " | done for today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

// DotStrip renders the last seven days oldest first: ● done, · missed, with
// today in brackets.
func DotStrip(h models.Habit, today string) string {
	dots, err := streak.Strip(h, today, constants.StripDays)
	if err != nil {
		return ""
	}
	parts := make([]string, len(dots))
	for i, d := range dots {
		mark := "·"
		if d.Done {
			mark = "●"
		}
		if d.IsToday {
			mark = "[" + mark + "]"
		}
		parts[i] = mark
	}
	return strings.Join(parts, " ")
}

type KeyMap struct {
	Add    key.Binding
	Mark   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mark done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, today string, width, height int) Model {
	l := list.New(toItems(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(habits []models.Habit, today string) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, Today: today}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit, today string) {
	m.list.SetItems(toItems(habits, today))
}

// Items returns the habits currently shown.
func (m Model) Items() []Item {
	var out []Item
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.DoneToday() {
				return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Name: i.Habit.Name} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet. Start by adding one and build your first streak ✨\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
