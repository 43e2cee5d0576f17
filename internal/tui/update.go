package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/tui/components/habits"
	"github.com/julianstephens/habitchain/internal/tui/components/members"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case clearToastMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case loginResultMsg:
		return m.handleLogin(msg)

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			logger.Error("Failed to load data", "error", msg.err)
			cmd := m.showToast(errorText("Failed to load data", msg.err), toastError)
			return m, cmd
		}
		m.loadErr = nil
		m.summary = msg.summary
		m.habitsModel.SetHabits(msg.habits, msg.summary.Today)
		m.membersModel.SetMembers(msg.members)
		return m, nil

	case actionResultMsg:
		if msg.err != nil {
			logger.Error(msg.failure, "error", msg.err)
			cmd := m.showToast(errorText(msg.failure, msg.err), toastError)
			return m, cmd
		}
		cmd := tea.Batch(m.showToast(msg.success, toastSuccess), m.loadDataCmd())
		return m, cmd

	case habits.AddHabitMsg:
		cmd := m.startAddHabit()
		return m, cmd

	case habits.MarkHabitMsg:
		return m, m.markDoneCmd(msg.ID)

	case habits.DeleteHabitMsg:
		m.confirmDelete(&deleteTarget{habit: true, id: msg.ID, name: msg.Name})
		return m, nil

	case members.AddMemberMsg:
		cmd := m.startAddMember()
		return m, cmd

	case members.DeleteMemberMsg:
		m.confirmDelete(&deleteTarget{id: msg.ID, name: msg.Name})
		return m, nil
	}

	switch m.state {
	case StateLogin, StateAddHabit, StateAddMember:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateTabs(msg)
}

func (m *Model) confirmDelete(target *deleteTarget) {
	m.previousState = m.state
	m.pendingDelete = target
	m.state = StateConfirmDelete
}

func (m Model) handleLogin(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loginPending = false
	if msg.err != nil {
		logger.Warn("Login failed", "error", msg.err)
		email := ""
		if m.loginForm != nil {
			email = m.loginForm.Email
		}
		m.opts.Email = email
		m.startLogin()
		cmd := tea.Batch(m.form.Init(), m.showToast(errorText("Login failed", msg.err), toastError))
		return m, cmd
	}

	m.user = msg.user
	if m.loginForm != nil {
		m.emoji = m.loginForm.Emoji
	}
	m.form = nil
	m.state = StateHabits
	m.loading = true
	if err := SaveSession(m.opts.SessionPath, Session{User: m.user, Emoji: m.emoji}); err != nil {
		logger.Warn("Failed to save session", "error", err)
	}
	cmd := tea.Batch(m.showToast("Welcome, "+m.user.Name+"!", toastSuccess), m.loadDataCmd())
	return m, cmd
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := ClearSession(m.opts.SessionPath); err != nil {
		logger.Warn("Failed to clear session", "error", err)
	}
	m.opts.Email = ""
	m.user = models.User{}
	m.emoji = ""
	m.loadErr = nil
	m.habitsModel.SetHabits(nil, "")
	m.membersModel.SetMembers(nil)
	m.startLogin()
	cmd := tea.Batch(m.form.Init(), m.showToast("Logged out", toastInfo))
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case km.String() == "esc" && m.state != StateLogin:
			m.closeForm()
			return m, nil
		}
	}

	// A completed form would submit again on every message
	if m.loginPending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		if m.state == StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		return m.submitForm()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		fm := m.loginForm
		m.loginPending = true
		return m, m.loginCmd(strings.TrimSpace(fm.Email), strings.TrimSpace(fm.Name))
	case StateAddHabit:
		fm := m.habitForm
		m.closeForm()
		return m, m.createHabitCmd(strings.TrimSpace(fm.Name), fm.Category)
	case StateAddMember:
		fm := m.memberForm
		m.closeForm()
		return m, m.createMemberCmd(strings.TrimSpace(fm.Name), fm.Relation)
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Confirm):
		target := m.pendingDelete
		m.closeForm()
		if target == nil {
			return m, nil
		}
		if target.habit {
			return m, m.deleteHabitCmd(target.id)
		}
		return m, m.deleteMemberCmd(target.id)
	case key.Matches(km, m.keys.Cancel):
		m.closeForm()
	}
	return m, nil
}

func (m Model) updateTabs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(km, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(km, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(km, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(km, m.keys.Refresh):
			m.loading = true
			return m, m.loadDataCmd()
		case key.Matches(km, m.keys.Logout):
			return m.logout()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateMembers:
		m.membersModel, cmd = m.membersModel.Update(msg)
	}
	return m, cmd
}
