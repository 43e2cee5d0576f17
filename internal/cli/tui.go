package cli

import (
	"github.com/julianstephens/habitchain/internal/tui"
)

type TuiCmd struct {
	Email string `help:"Prefill the login form with this email."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	return tui.Run(ctx.Client(), tui.Options{
		SessionPath: ctx.SessionPath(),
		Email:       c.Email,
		Timeout:     ctx.Config.Client.Timeout,
	})
}
