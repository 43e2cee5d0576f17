package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
	"github.com/julianstephens/habitchain/internal/tui/components/habits"
	"github.com/julianstephens/habitchain/internal/tui/components/members"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateMembers
	StateLogin
	StateAddHabit
	StateAddMember
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

type deleteTarget struct {
	habit bool
	id    int
	name  string
}

type Options struct {
	// SessionPath remembers the logged-in user between runs. Empty disables it.
	SessionPath string
	// Email prefills the login form.
	Email   string
	Timeout time.Duration
}

type Model struct {
	api           API
	opts          Options
	timeout       time.Duration
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	membersModel  members.Model
	form          *huh.Form
	loginForm     *LoginFormModel
	habitForm     *HabitFormModel
	memberForm    *MemberFormModel
	user          models.User
	emoji         string
	summary       streak.Summary
	loading       bool
	// loginPending is set while a submitted login awaits its result
	loginPending  bool
	loadErr       error
	pendingDelete *deleteTarget
	toast         *toast
	toastSeq      int
	quitting      bool
	width         int
	height        int
}

func NewModel(api API, opts Options) Model {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	m := Model{
		api:          api,
		opts:         opts,
		timeout:      timeout,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  habits.New(nil, "", 0, 0),
		membersModel: members.New(nil, 0, 0),
	}

	if s, ok := LoadSession(opts.SessionPath); ok {
		m.user = s.User
		m.emoji = s.Emoji
		m.state = StateHabits
		m.loading = true
	} else {
		m.startLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == StateLogin {
		return m.form.Init()
	}
	return m.loadDataCmd()
}

func (m *Model) startLogin() {
	m.state = StateLogin
	m.loginForm = &LoginFormModel{Email: m.opts.Email, Emoji: constants.Emojis[0]}
	m.form = NewLoginForm(m.loginForm)
}

func (m *Model) startAddHabit() tea.Cmd {
	m.previousState = m.state
	m.state = StateAddHabit
	m.habitForm = &HabitFormModel{Category: constants.Categories[0]}
	m.form = NewHabitForm(m.habitForm)
	return m.form.Init()
}

func (m *Model) startAddMember() tea.Cmd {
	m.previousState = m.state
	m.state = StateAddMember
	m.memberForm = &MemberFormModel{Relation: constants.Relations[0]}
	m.form = NewMemberForm(m.memberForm)
	return m.form.Init()
}

// closeForm returns to the tab that opened the current form or prompt.
func (m *Model) closeForm() {
	m.form = nil
	m.pendingDelete = nil
	m.state = m.previousState
}

func (m *Model) resize() {
	// header, stats bar, tabs, toast and help
	h := max(m.height-12, 0)
	w := max(m.width-4, 0)
	m.habitsModel.SetSize(w, h)
	m.membersModel.SetSize(w, h)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Mark, m.keys.Delete)
	case StateMembers:
		keys = append(keys, m.keys.Add, m.keys.Delete)
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh, m.keys.Logout}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Mark, m.keys.Delete}
	case StateMembers:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

// Run starts the interactive terminal UI.
func Run(api API, opts Options) error {
	p := tea.NewProgram(NewModel(api, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
