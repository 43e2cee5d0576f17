package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitchain/internal/api"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/metrics"
	"github.com/julianstephens/habitchain/internal/service"
)

type ServeCmd struct {
	Addr      string `help:"Listen address (overrides the config file)."`
	NoMetrics bool   `help:"Do not expose /metrics."`
	NoBackup  bool   `help:"Skip the backup taken at startup."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}

	if cfg.Storage.BackupOnStart && !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	var m *metrics.Metrics
	var opts []service.Option
	if !c.NoMetrics {
		m = metrics.New()
		opts = append(opts, service.WithRecorder(m))
	}

	svc, err := ctx.Service(opts...)
	if err != nil {
		return err
	}

	router := api.NewRouter(svc, api.Options{
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		LoginRate:      cfg.Server.LoginRate,
		LoginBurst:     cfg.Server.LoginBurst,
		TrustProxy:     cfg.Server.TrustProxy,
		Metrics:        m,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting habitchain API",
		"addr", cfg.Server.Addr,
		"base_path", cfg.Server.BasePath,
		"data", ctx.Store.Path(),
		"timezone", cfg.Timezone,
		"today", svc.Today(),
	)
	return api.NewServer(cfg.Server, router).Run(runCtx)
}
