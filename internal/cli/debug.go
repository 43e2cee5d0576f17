package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitchain/internal/backup"
	"github.com/julianstephens/habitchain/internal/storage"
)

type DebugCmd struct {
	DataPath  *DebugDataPathCmd  `cmd:"" help:"Show data file path."`
	DumpUser  *DebugDumpUserCmd  `cmd:"" help:"Dump user data as JSON."`
	DumpHabit *DebugDumpHabitCmd `cmd:"" help:"Dump habit data as JSON."`
}

type DebugDataPathCmd struct{}

func (cmd *DebugDataPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	return ctx.printJSON(map[string]string{
		"path":    ctx.Store.Path(),
		"backups": backup.NewManager(ctx.Store.Path()).GetBackupDir(),
		"session": ctx.SessionPath(),
	})
}

type DebugDumpUserCmd struct {
	Email string `arg:"" help:"Email of the user to dump."`
}

func (cmd *DebugDumpUserCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx.Store.Path())
	if err != nil {
		return err
	}

	u, ok := storage.NewStore(doc).UserByEmail(cmd.Email)
	if !ok {
		return fmt.Errorf("user not found: %s", cmd.Email)
	}
	return ctx.printJSON(u)
}

type DebugDumpHabitCmd struct {
	ID int `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx.Store.Path())
	if err != nil {
		return err
	}

	h, ok := storage.NewStore(doc).Habit(cmd.ID)
	if !ok {
		return fmt.Errorf("habit not found: %d", cmd.ID)
	}
	return ctx.printJSON(h)
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
