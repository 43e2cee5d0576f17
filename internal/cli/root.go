package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitchain/internal/backup"
	"github.com/julianstephens/habitchain/internal/client"
	"github.com/julianstephens/habitchain/internal/config"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/service"
	"github.com/julianstephens/habitchain/internal/storage"
	"github.com/julianstephens/habitchain/internal/tui"
)

const sessionFileName = "session.json"

type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      *storage.JSONStore
	// Out receives command output; nil means stdout.
	Out io.Writer
}

// NewContext builds the command context from a validated configuration.
func NewContext(cfg *config.Config, configPath string) *Context {
	return &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      storage.NewJSONStore(config.ExpandPath(cfg.Storage.Path)),
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Service opens the data file and wraps it in a service using the configured
// timezone.
func (c *Context) Service(opts ...service.Option) (*service.Service, error) {
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	opts = append([]service.Option{service.WithLocation(loc)}, opts...)
	return service.New(c.Store, opts...), nil
}

// Client returns an API client for the configured server.
func (c *Context) Client() *client.Client {
	return client.New(client.Config{
		BaseURL: c.Config.Client.APIURL,
		Timeout: c.Config.Client.Timeout,
	})
}

// SessionPath is where the logged-in user is remembered, next to the config file.
func (c *Context) SessionPath() string {
	dir := filepath.Dir(config.ExpandPath(c.ConfigPath))
	return filepath.Join(dir, sessionFileName)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := os.Stat(c.Store.Path()); err != nil {
		return
	}
	mgr := backup.NewManager(c.Store.Path())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// UserFlags selects the user a command acts as.
type UserFlags struct {
	Email string `help:"Act as this user (defaults to the saved login)." short:"e"`
}

// resolveUser logs in with --email, or falls back to the saved session.
func (c *Context) resolveUser(ctx context.Context, api tui.API, flags UserFlags) (models.User, error) {
	if flags.Email != "" {
		return api.Login(ctx, flags.Email, "")
	}
	if s, ok := tui.LoadSession(c.SessionPath()); ok {
		return s.User, nil
	}
	return models.User{}, fmt.Errorf("not logged in: pass --email or run 'habitchain login'")
}

func (c *Context) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Config.Client.Timeout)
}
