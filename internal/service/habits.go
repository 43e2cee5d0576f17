package service

import (
	"context"
	"strings"

	"github.com/julianstephens/habitchain/internal/constants"
	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/streak"
)

// HabitInput carries the client-supplied fields of a new habit.
type HabitInput struct {
	UserID   int
	Name     string
	Category string
}

// ListHabits returns the user's habits in creation order. A missing or zero
// user id yields an empty list.
func (s *Service) ListHabits(ctx context.Context, userID int) []models.Habit {
	if userID <= 0 {
		return []models.Habit{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.HabitsByUser(userID)
}

func (s *Service) CreateHabit(ctx context.Context, in HabitInput) (models.Habit, error) {
	if in.UserID <= 0 {
		return models.Habit{}, apperrors.Validation("userId", "userId is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Habit{}, apperrors.Validation("name", "Habit name is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = constants.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.store.AddHabit(models.Habit{
		UserID:   in.UserID,
		Name:     name,
		Category: category,
		History:  []string{},
	})
	s.persist(ctx)
	logger.Debug("Created habit", "habit_id", h.ID, "user_id", h.UserID)
	return h, nil
}

// MarkDone records a completion for today and advances or resets the streak.
// Repeated calls on the same day return the habit unchanged.
func (s *Service) MarkDone(ctx context.Context, id int) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.store.Habit(id)
	if !ok {
		return models.Habit{}, apperrors.NotFound("Habit", id)
	}

	today := s.Today()
	next, outcome, err := streak.MarkDone(h, today)
	if err != nil {
		return models.Habit{}, err
	}
	s.recorder.HabitMarked(outcome)

	if outcome == streak.AlreadyDone {
		return next, nil
	}

	s.store.PutHabit(next)
	s.persist(ctx)
	logger.Debug("Marked habit done", "habit_id", id, "day", today, "outcome", outcome, "current_streak", next.CurrentStreak)
	return next, nil
}

func (s *Service) DeleteHabit(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.RemoveHabit(id) {
		return apperrors.NotFound("Habit", id)
	}
	s.persist(ctx)
	logger.Debug("Deleted habit", "habit_id", id)
	return nil
}

// Summary returns the stats bar totals for the user's habits.
func (s *Service) Summary(ctx context.Context, userID int) streak.Summary {
	return streak.Summarize(s.ListHabits(ctx, userID), s.Today())
}
