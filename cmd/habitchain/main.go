package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitchain/internal/cli"
	"github.com/julianstephens/habitchain/internal/config"
	"github.com/julianstephens/habitchain/internal/constants"
	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." default:"${default_config}"`
	Data     string `help:"Data file path (overrides the config file)."`
	Timezone string `help:"IANA timezone that decides which day is today (overrides the config file)."`
	APIURL   string `name:"api-url" help:"API base URL for client commands (overrides the config file)."`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Write a default config and initialize the data file."`
	Serve    cli.ServeCmd    `cmd:"" help:"Run the HTTP API server."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Login    cli.LoginCmd    `cmd:"" help:"Log in by email and remember the user."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Forget the remembered user."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and streaks."`
	Member   cli.MemberCmd   `cmd:"" help:"Manage who your habits are shared with."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show habit totals for today."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage data file backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the data file for inconsistent records."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tools    cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	vars := kong.Vars{
		"version":        constants.Version,
		"default_config": constants.DefaultConfigPath,
	}
	for k, v := range cli.KongVars() {
		vars[k] = v
	}

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Build daily habit streaks and share them with the people who keep you going"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		vars,
	)

	isInit := kctx.Selected() != nil && kctx.Selected().Name == "init"
	cfg, err := config.LoadFromFile(CLI.Config, true)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Data != "" {
		cfg.Storage.Path = CLI.Data
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.APIURL != "" {
		cfg.Client.APIURL = CLI.APIURL
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil && !isInit {
		apperrors.Fatal(err)
	}

	isServe := kctx.Selected() != nil && kctx.Selected().Name == "serve"
	if err := logger.Init(logger.Config{
		Debug:   cfg.Log.Debug,
		LogDir:  config.ExpandPath(cfg.Log.Dir),
		Console: isServe,
	}); err != nil {
		apperrors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, CLI.Config)
	apperrors.Fatal(kctx.Run(appCtx))
}
