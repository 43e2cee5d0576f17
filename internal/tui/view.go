package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateLogin {
		return m.viewLogin()
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.viewHabits()
	case StateMembers:
		content = docStyle.Render(m.membersModel.View())
	case StateAddHabit, StateAddMember:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewStats(),
		m.viewTabs(),
		content,
		m.viewToast(),
		m.help.View(m),
	)
}

func (m Model) viewLogin() string {
	card := loginCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("HabitChain")+" "+badgeStyle.Render("beta"),
		mutedStyle.Render("Build streaks together."),
		"",
		m.viewLoginForm(),
	))
	ui := lipgloss.JoinVertical(lipgloss.Center, card, m.viewToast())
	if m.width == 0 || m.height == 0 {
		return ui
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, ui)
}

func (m Model) viewHeader() string {
	left := titleStyle.Render("HabitChain") + " " + badgeStyle.Render("beta")
	who := m.user.Name
	if m.emoji != "" {
		who = m.emoji + " " + who
	}
	right := who + " " + mutedStyle.Render(m.user.Email)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right),
	)
}

func (m Model) viewStats() string {
	if m.loading && m.summary.Today == "" {
		return lipgloss.NewStyle().Padding(1, 2).Render(mutedStyle.Render("Loading your habits..."))
	}
	if m.loadErr != nil && m.summary.Today == "" {
		return lipgloss.NewStyle().Padding(1, 2).Render(dangerStyle.Render("Failed to load data. Press 'r' to retry."))
	}
	s := m.summary
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top,
		pillStyle.Render(fmt.Sprintf("📦 %d Total habits", s.TotalHabits)),
		pillStyle.Render(fmt.Sprintf("🔥 %d Done today", s.DoneToday)),
		pillStyle.Render(fmt.Sprintf("🏆 %d Total streaks", s.StreakSum)),
	))
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range []string{"Habits", "Shared with"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewHabits() string {
	if m.loading && m.summary.Today == "" {
		return ""
	}
	return docStyle.Render(m.habitsModel.View())
}

func (m Model) viewConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}
	kind := "member"
	if m.pendingDelete.habit {
		kind = "habit"
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Delete %s %q?", kind, m.pendingDelete.name)),
		"",
		mutedStyle.Render("[y] Yes   [n] No"),
	))
}

func (m Model) viewToast() string {
	if m.toast == nil {
		return ""
	}
	style := infoStyle
	switch m.toast.kind {
	case toastSuccess:
		style = successStyle
	case toastError:
		style = dangerStyle
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(style.Render(m.toast.text))
}

func (m Model) viewLoginForm() string {
	if m.loginPending {
		return mutedStyle.Render("Logging in...")
	}
	return m.form.View()
}
