package members

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitchain/internal/models"
)

type AddMemberMsg struct{}

type DeleteMemberMsg struct {
	ID   int
	Name string
}

type Item struct {
	Member models.Member
}

func (i Item) Title() string       { return i.Member.Name }
func (i Item) Description() string { return i.Member.Relation }
func (i Item) FilterValue() string { return i.Member.Name }

// SharedWith summarizes who can see the user's progress.
func SharedWith(members []models.Member) string {
	if len(members) == 0 {
		return "You haven't added anyone yet. Add a friend or family member who can see your progress."
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprintf("%s (%s)", m.Name, m.Relation)
	}
	return "Currently shared with: " + strings.Join(names, ", ")
}

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add member"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	members []models.Member
}

func New(members []models.Member, width, height int) Model {
	l := list.New(toItems(members), list.NewDefaultDelegate(), width, height)
	l.Title = "Shared with"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys, members: members}
}

func toItems(members []models.Member) []list.Item {
	items := make([]list.Item, len(members))
	for i, m := range members {
		items[i] = Item{Member: m}
	}
	return items
}

func (m *Model) SetMembers(members []models.Member) {
	m.members = members
	m.list.SetItems(toItems(members))
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMemberMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMemberMsg{ID: i.Member.ID, Name: i.Member.Name} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	summary := "\n  " + SharedWith(m.members) + "\n"
	if len(m.members) == 0 {
		return summary + "  Press 'a' to add one."
	}
	return summary + "\n" + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	// leave room for the summary line
	m.list.SetSize(width, max(height-3, 0))
}
