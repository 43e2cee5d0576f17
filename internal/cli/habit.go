package cli

import (
	"fmt"

	"github.com/julianstephens/habitchain/internal/constants"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/tui/components/habits"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with their streaks." default:"1"`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit as done today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	UserFlags `embed:""`
	Name      string `arg:"" help:"Habit name."`
	Category  string `help:"Habit category." default:"${default_category}"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	api := ctx.Client()
	u, err := ctx.resolveUser(reqCtx, api, c.UserFlags)
	if err != nil {
		return err
	}
	h, err := api.CreateHabit(reqCtx, u.ID, c.Name, c.Category)
	if err != nil {
		return err
	}
	ctx.printf("Added habit %d: %s (%s)\n", h.ID, h.Name, h.Category)
	return nil
}

type HabitListCmd struct {
	UserFlags `embed:""`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	api := ctx.Client()
	u, err := ctx.resolveUser(reqCtx, api, c.UserFlags)
	if err != nil {
		return err
	}
	list, err := api.ListHabits(reqCtx, u.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.println("No habits yet. Start by adding one and build your first streak ✨")
		return nil
	}

	summary, err := api.Stats(reqCtx, u.ID)
	if err != nil {
		return err
	}
	for _, h := range list {
		ctx.println(formatHabit(h, summary.Today))
	}
	return nil
}

func formatHabit(h models.Habit, today string) string {
	mark := "○"
	if h.LastDone() == today {
		mark = "✓"
	}
	return fmt.Sprintf("%3d %s %-24s %-10s streak %-3d longest %-3d %s",
		h.ID, mark, h.Name, h.Category, h.CurrentStreak, h.LongestStreak, habits.DotStrip(h, today))
}

type HabitDoneCmd struct {
	ID int `arg:"" help:"Habit id."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	h, err := ctx.Client().MarkDone(reqCtx, c.ID)
	if err != nil {
		return err
	}
	ctx.printf("🔥 %s: streak %d (longest %d)\n", h.Name, h.CurrentStreak, h.LongestStreak)
	return nil
}

type HabitDeleteCmd struct {
	ID int `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	if err := ctx.Client().DeleteHabit(reqCtx, c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit %d\n", c.ID)
	return nil
}

// KongVars supplies defaults referenced from command tags.
func KongVars() map[string]string {
	return map[string]string{
		"default_category": constants.DefaultCategory,
		"default_relation": constants.DefaultRelation,
	}
}
