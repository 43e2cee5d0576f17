package tui

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitchain/internal/client"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
	"github.com/julianstephens/habitchain/internal/tui/components/habits"
	"github.com/julianstephens/habitchain/internal/tui/components/members"
)

type fakeAPI struct {
	mu       sync.Mutex
	user     models.User
	loginErr error
	logins   int
	habits   []models.Habit
	members  []models.Member
	deleted  []int
	marked   []int
	created  []string
	err      error
}

func (f *fakeAPI) Login(_ context.Context, email, name string) (models.User, error) {
	f.mu.Lock()
	f.logins++
	f.mu.Unlock()
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	u := f.user
	u.Email = email
	if name != "" {
		u.Name = name
	}
	return u, nil
}

func (f *fakeAPI) ListHabits(context.Context, int) ([]models.Habit, error) {
	return f.habits, f.err
}

func (f *fakeAPI) CreateHabit(_ context.Context, _ int, name, category string) (models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name+"/"+category)
	return models.Habit{Name: name, Category: category}, f.err
}

func (f *fakeAPI) MarkDone(_ context.Context, id int) (models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, id)
	return models.Habit{ID: id}, f.err
}

func (f *fakeAPI) DeleteHabit(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeAPI) ListMembers(context.Context, int) ([]models.Member, error) {
	return f.members, f.err
}

func (f *fakeAPI) CreateMember(_ context.Context, _ int, name, relation string) (models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name+"/"+relation)
	return models.Member{Name: name, Relation: relation}, f.err
}

func (f *fakeAPI) DeleteMember(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, -id)
	return f.err
}

func (f *fakeAPI) Stats(_ context.Context, _ int) (streak.Summary, error) {
	return streak.Summarize(f.habits, "2024-05-07"), f.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func loggedInModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveSession(path, Session{User: models.User{ID: 1, Name: "ann", Email: "ann@example.com"}, Emoji: "🔥"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	return NewModel(api, Options{SessionPath: path})
}

func TestNewModelWithoutSessionShowsLogin(t *testing.T) {
	m := NewModel(&fakeAPI{}, Options{SessionPath: filepath.Join(t.TempDir(), "none.json"), Email: "a@b.c"})

	if m.state != StateLogin {
		t.Fatalf("state = %v, want StateLogin", m.state)
	}
	if m.loginForm == nil || m.loginForm.Email != "a@b.c" {
		t.Errorf("login form not prefilled: %+v", m.loginForm)
	}
	if !strings.Contains(m.View(), "HabitChain") {
		t.Error("login view missing title")
	}
}

func TestNewModelRestoresSession(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	if m.state != StateHabits {
		t.Fatalf("state = %v, want StateHabits", m.state)
	}
	if m.user.ID != 1 || m.emoji != "🔥" {
		t.Errorf("session not restored: %+v %q", m.user, m.emoji)
	}
	if !m.loading {
		t.Error("expected loading on start")
	}
	if !strings.Contains(m.View(), "Loading your habits...") {
		t.Error("expected loading text")
	}
}

func TestLoginResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m := NewModel(&fakeAPI{}, Options{SessionPath: path})
	m.loginForm.Emoji = "🚀"

	m, cmd := update(t, m, loginResultMsg{user: models.User{ID: 7, Name: "bob", Email: "bob@example.com"}})

	if m.state != StateHabits {
		t.Fatalf("state = %v, want StateHabits", m.state)
	}
	if cmd == nil {
		t.Fatal("expected load command")
	}
	if m.toast == nil || m.toast.text != "Welcome, bob!" {
		t.Errorf("toast = %+v", m.toast)
	}

	s, ok := LoadSession(path)
	if !ok || s.User.ID != 7 || s.Emoji != "🚀" {
		t.Errorf("session not saved: %+v ok=%v", s, ok)
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	m := NewModel(&fakeAPI{}, Options{})
	m.loginForm.Email = "bad"

	err := &client.APIError{Status: http.StatusBadRequest, Message: "Email is required"}
	m, _ = update(t, m, loginResultMsg{err: err})

	if m.state != StateLogin {
		t.Fatalf("state = %v, want StateLogin", m.state)
	}
	if m.toast == nil || m.toast.text != "Login failed: Email is required" || m.toast.kind != toastError {
		t.Errorf("toast = %+v", m.toast)
	}
	if m.loginForm.Email != "bad" {
		t.Errorf("email not kept: %q", m.loginForm.Email)
	}
}

func TestLoadData(t *testing.T) {
	done := "2024-05-07"
	api := &fakeAPI{
		habits: []models.Habit{
			{ID: 1, UserID: 1, Name: "Run", Category: "Health", CurrentStreak: 3, LongestStreak: 3, LastDoneDate: &done, History: []string{done}},
			{ID: 2, UserID: 1, Name: "Read", Category: "Study"},
		},
		members: []models.Member{{ID: 1, UserID: 1, Name: "Mom", Relation: "Mother"}},
	}
	m := loggedInModel(t, api)

	msg := m.loadDataCmd()()
	m, _ = update(t, m, msg)

	if m.loading {
		t.Error("still loading")
	}
	if m.summary.TotalHabits != 2 || m.summary.DoneToday != 1 || m.summary.StreakSum != 3 {
		t.Errorf("summary = %+v", m.summary)
	}
	if items := m.habitsModel.Items(); len(items) != 2 || !items[0].DoneToday() {
		t.Errorf("habit items = %+v", items)
	}
	view := m.View()
	for _, want := range []string{"2 Total habits", "1 Done today", "3 Total streaks"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLoadDataFailure(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{err: errors.New("connection refused")})

	m, _ = update(t, m, m.loadDataCmd()())

	if m.loadErr == nil {
		t.Fatal("expected load error")
	}
	if m.toast == nil || m.toast.text != "Failed to load data" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestMarkDone(t *testing.T) {
	api := &fakeAPI{}
	m := loggedInModel(t, api)

	m, cmd := update(t, m, habits.MarkHabitMsg{ID: 4})
	if cmd == nil {
		t.Fatal("expected mark command")
	}
	msg := cmd()
	res, ok := msg.(actionResultMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if len(api.marked) != 1 || api.marked[0] != 4 {
		t.Errorf("marked = %v", api.marked)
	}

	m, _ = update(t, m, res)
	if m.toast == nil || m.toast.text != "Nice! Streak updated 🔥" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestActionFailure(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	m, _ = update(t, m, actionResultMsg{
		success: "Habit added ✅",
		failure: "Failed to add habit",
		err:     &client.APIError{Status: http.StatusBadRequest, Message: "Habit name is required"},
	})

	if m.toast == nil || m.toast.kind != toastError || m.toast.text != "Failed to add habit: Habit name is required" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestDeleteHabitConfirm(t *testing.T) {
	api := &fakeAPI{}
	m := loggedInModel(t, api)

	m, _ = update(t, m, habits.DeleteHabitMsg{ID: 9, Name: "Run"})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), `Delete habit "Run"?`) {
		t.Error("confirm prompt missing")
	}

	m, cmd := update(t, m, runes("y"))
	if m.state != StateHabits {
		t.Errorf("state = %v, want StateHabits", m.state)
	}
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	cmd()
	if len(api.deleted) != 1 || api.deleted[0] != 9 {
		t.Errorf("deleted = %v", api.deleted)
	}
}

func TestDeleteMemberCancel(t *testing.T) {
	api := &fakeAPI{}
	m := loggedInModel(t, api)
	m.state = StateMembers

	m, _ = update(t, m, members.DeleteMemberMsg{ID: 2, Name: "Mom"})
	m, cmd := update(t, m, runes("n"))

	if m.state != StateMembers {
		t.Errorf("state = %v, want StateMembers", m.state)
	}
	if cmd != nil {
		t.Error("cancel should not issue a command")
	}
	if len(api.deleted) != 0 {
		t.Errorf("deleted = %v", api.deleted)
	}
}

func TestAddHabitFormOpensAndCancels(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	m, _ = update(t, m, habits.AddHabitMsg{})
	if m.state != StateAddHabit || m.form == nil {
		t.Fatalf("state = %v form=%v", m.state, m.form != nil)
	}
	if m.habitForm.Category != "Health" {
		t.Errorf("default category = %q", m.habitForm.Category)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits || m.form != nil {
		t.Errorf("form not closed: state=%v", m.state)
	}
}

func TestSubmitForms(t *testing.T) {
	api := &fakeAPI{}
	m := loggedInModel(t, api)

	m, _ = update(t, m, habits.AddHabitMsg{})
	m.habitForm.Name = "  Code 1 hour "
	m.habitForm.Category = "Career"
	next, cmd := m.submitForm()
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected create command")
	}
	cmd()

	m.state = StateMembers
	m, _ = update(t, m, members.AddMemberMsg{})
	m.memberForm.Name = "Rahul"
	next, cmd = m.submitForm()
	m = next.(Model)
	cmd()

	if m.state != StateMembers {
		t.Errorf("state = %v, want StateMembers", m.state)
	}
	want := []string{"Code 1 hour/Career", "Rahul/Friend"}
	if strings.Join(api.created, ",") != strings.Join(want, ",") {
		t.Errorf("created = %v, want %v", api.created, want)
	}
}

func TestTabsCycle(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateMembers {
		t.Errorf("after tab state = %v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHabits {
		t.Errorf("after second tab state = %v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateMembers {
		t.Errorf("after shift+tab state = %v", m.state)
	}
}

func TestToastOnlyClearsLatest(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	m.showToast("first", toastInfo)
	first := m.toast.id
	m.showToast("second", toastInfo)

	m, _ = update(t, m, clearToastMsg{id: first})
	if m.toast == nil || m.toast.text != "second" {
		t.Fatalf("stale timer cleared newer toast: %+v", m.toast)
	}
	m, _ = update(t, m, clearToastMsg{id: m.toast.id})
	if m.toast != nil {
		t.Errorf("toast not cleared: %+v", m.toast)
	}
}

func TestLogout(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})
	path := m.opts.SessionPath

	m, _ = update(t, m, runes("L"))

	if m.state != StateLogin {
		t.Fatalf("state = %v, want StateLogin", m.state)
	}
	if m.user.ID != 0 {
		t.Errorf("user not cleared: %+v", m.user)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present: %v", err)
	}
	if m.toast == nil || m.toast.text != "Logged out" {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestQuit(t *testing.T) {
	m := loggedInModel(t, &fakeAPI{})

	m, cmd := update(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestSessionFiles(t *testing.T) {
	dir := t.TempDir()

	if _, ok := LoadSession(""); ok {
		t.Error("empty path should not load")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := LoadSession(corrupt); ok {
		t.Error("corrupt session should not load")
	}

	path := filepath.Join(dir, "nested", "session.json")
	want := Session{User: models.User{ID: 3, Name: "cy", Email: "cy@example.com"}, Emoji: "🌱"}
	if err := SaveSession(path, want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, ok := LoadSession(path)
	if !ok || got != want {
		t.Errorf("LoadSession = %+v ok=%v", got, ok)
	}

	if err := ClearSession(path); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if err := ClearSession(path); err != nil {
		t.Errorf("second ClearSession: %v", err)
	}
}

func TestErrorText(t *testing.T) {
	if got := errorText("Failed", errors.New("dial tcp")); got != "Failed" {
		t.Errorf("errorText(plain) = %q", got)
	}
	if got := errorText("Failed", &client.APIError{Status: 404, Message: "Habit not found"}); got != "Failed: Habit not found" {
		t.Errorf("errorText(api) = %q", got)
	}
}

func TestLoginSubmitsOnceWhilePending(t *testing.T) {
	api := &fakeAPI{user: models.User{ID: 5, Name: "dee"}}
	m := NewModel(api, Options{SessionPath: filepath.Join(t.TempDir(), "session.json")})
	m.loginForm.Email = "dee@example.com"
	m.form.State = huh.StateCompleted

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil || !m.loginPending {
		t.Fatalf("expected login to be submitted, pending=%v", m.loginPending)
	}
	result := cmd()

	for _, msg := range []tea.Msg{
		tea.WindowSizeMsg{Width: 100, Height: 30},
		runes("x"),
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		var extra tea.Cmd
		m, extra = update(t, m, msg)
		if extra != nil {
			extra()
		}
	}
	if api.logins != 1 {
		t.Errorf("login requests = %d, want 1", api.logins)
	}
	if m.state != StateLogin {
		t.Errorf("state = %v, want StateLogin while pending", m.state)
	}
	if !strings.Contains(m.View(), "Logging in...") {
		t.Error("pending login view missing")
	}

	m, _ = update(t, m, result)
	if m.loginPending || m.state != StateHabits {
		t.Errorf("after result pending=%v state=%v", m.loginPending, m.state)
	}
}

func TestLoginFailureClearsPending(t *testing.T) {
	m := NewModel(&fakeAPI{}, Options{SessionPath: filepath.Join(t.TempDir(), "none.json")})
	m.loginPending = true

	m, _ = update(t, m, loginResultMsg{err: errors.New("boom")})

	if m.loginPending {
		t.Error("pending not cleared after failed login")
	}
	if m.state != StateLogin || m.form == nil || m.form.State != huh.StateNormal {
		t.Errorf("expected a fresh login form, state=%v", m.state)
	}
}
