package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var statPillStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)

type StatsCmd struct {
	UserFlags `embed:""`
}

func (c *StatsCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	api := ctx.Client()
	u, err := ctx.resolveUser(reqCtx, api, c.UserFlags)
	if err != nil {
		return err
	}
	s, err := api.Stats(reqCtx, u.ID)
	if err != nil {
		return err
	}

	ctx.printf("%s · %s\n", u.Name, s.Today)
	ctx.println(lipgloss.JoinHorizontal(lipgloss.Top,
		statPillStyle.Render(fmt.Sprintf("📦 %d Total habits", s.TotalHabits)),
		statPillStyle.Render(fmt.Sprintf("🔥 %d Done today", s.DoneToday)),
		statPillStyle.Render(fmt.Sprintf("🏆 %d Total streaks", s.StreakSum)),
	))
	return nil
}
