package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitchain/internal/client"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
)

const toastDuration = 2500 * time.Millisecond

// API is the subset of the HTTP client the terminal UI needs.
type API interface {
	Login(ctx context.Context, email, name string) (models.User, error)
	ListHabits(ctx context.Context, userID int) ([]models.Habit, error)
	CreateHabit(ctx context.Context, userID int, name, category string) (models.Habit, error)
	MarkDone(ctx context.Context, id int) (models.Habit, error)
	DeleteHabit(ctx context.Context, id int) error
	ListMembers(ctx context.Context, userID int) ([]models.Member, error)
	CreateMember(ctx context.Context, userID int, name, relation string) (models.Member, error)
	DeleteMember(ctx context.Context, id int) error
	Stats(ctx context.Context, userID int) (streak.Summary, error)
}

var _ API = (*client.Client)(nil)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	id   int
	text string
	kind toastKind
}

type clearToastMsg struct {
	id int
}

type loginResultMsg struct {
	user models.User
	err  error
}

type dataLoadedMsg struct {
	habits  []models.Habit
	members []models.Member
	summary streak.Summary
	err     error
}

// actionResultMsg reports the outcome of a mutation; on success the data is
// reloaded and the success text shown.
type actionResultMsg struct {
	success string
	failure string
	err     error
}

func (m Model) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) loginCmd(email, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		u, err := m.api.Login(ctx, email, name)
		return loginResultMsg{user: u, err: err}
	}
}

func (m Model) loadDataCmd() tea.Cmd {
	userID := m.user.ID
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()

		habits, err := m.api.ListHabits(ctx, userID)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		members, err := m.api.ListMembers(ctx, userID)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		summary, err := m.api.Stats(ctx, userID)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{habits: habits, members: members, summary: summary}
	}
}

func (m Model) actionCmd(success, failure string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		return actionResultMsg{success: success, failure: failure, err: fn(ctx)}
	}
}

func (m Model) createHabitCmd(name, category string) tea.Cmd {
	userID := m.user.ID
	return m.actionCmd("Habit added ✅", "Failed to add habit", func(ctx context.Context) error {
		_, err := m.api.CreateHabit(ctx, userID, name, category)
		return err
	})
}

func (m Model) markDoneCmd(id int) tea.Cmd {
	return m.actionCmd("Nice! Streak updated 🔥", "Failed to update streak", func(ctx context.Context) error {
		_, err := m.api.MarkDone(ctx, id)
		return err
	})
}

func (m Model) deleteHabitCmd(id int) tea.Cmd {
	return m.actionCmd("Habit deleted", "Failed to delete habit", func(ctx context.Context) error {
		return m.api.DeleteHabit(ctx, id)
	})
}

func (m Model) createMemberCmd(name, relation string) tea.Cmd {
	userID := m.user.ID
	return m.actionCmd("Member added 👥", "Failed to add member", func(ctx context.Context) error {
		_, err := m.api.CreateMember(ctx, userID, name, relation)
		return err
	})
}

func (m Model) deleteMemberCmd(id int) tea.Cmd {
	return m.actionCmd("Member removed", "Failed to remove member", func(ctx context.Context) error {
		return m.api.DeleteMember(ctx, id)
	})
}

// showToast replaces the current toast and schedules its removal. A later
// toast is not cleared by an earlier one's timer.
func (m *Model) showToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, text: text, kind: kind}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

// errorText prefers the API's message over transport details.
func errorText(prefix string, err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return prefix + ": " + apiErr.Message
	}
	return prefix
}
