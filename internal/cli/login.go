package cli

import (
	"github.com/julianstephens/habitchain/internal/tui"
)

type LoginCmd struct {
	Email string `arg:"" help:"Email to log in with."`
	Name  string `help:"Display name (defaults to the part of the email before @)."`
	Emoji string `help:"Avatar shown in the terminal UI." default:"🔥"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.requestContext()
	defer cancel()

	u, err := ctx.Client().Login(reqCtx, c.Email, c.Name)
	if err != nil {
		return err
	}
	if err := tui.SaveSession(ctx.SessionPath(), tui.Session{User: u, Emoji: c.Emoji}); err != nil {
		return err
	}
	ctx.printf("✓ Logged in as %s <%s> (user %d)\n", u.Name, u.Email, u.ID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := tui.ClearSession(ctx.SessionPath()); err != nil {
		return err
	}
	ctx.println("Logged out.")
	return nil
}
