package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitchain/internal/config"
)

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file with the defaults."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := config.ExpandPath(ctx.ConfigPath)
	if _, err := os.Stat(path); err == nil && !c.Force {
		ctx.printf("Config already exists at: %s\n", path)
	} else {
		if err := ctx.Config.SaveToFile(path); err != nil {
			return err
		}
		ctx.printf("Wrote config to: %s\n", path)
	}

	if _, err := os.Stat(ctx.Store.Path()); err == nil {
		ctx.printf("Data file already exists at: %s\n", ctx.Store.Path())
		return nil
	}
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize data file: %w", err)
	}
	ctx.printf("Initialized habitchain storage at: %s\n", ctx.Store.Path())
	return nil
}
