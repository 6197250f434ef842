package cli

import (
	"context"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandel/pkg/observability"
	"github.com/matzehuels/mandel/pkg/server"
)

type serveOpts struct {
	addr    string
	gops    bool
	noCache bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Long: `Serve renders over HTTP until interrupted.

  curl -o seahorse.png 'localhost:8080/api/v1/render?size=800x800&region=seahorse'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.gops, "gops", false, "start the gops diagnostics agent")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	if opts.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return err
		}
		defer agent.Close()
		logger.Debug("gops agent started")
	}

	counters := observability.NewCounters()
	observability.SetRenderHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetHTTPHooks(counters)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	scfg := c.serverConfig()
	if opts.addr != "" {
		scfg.Addr = opts.addr
	}
	srv := server.New(runner, scfg, logger, server.WithCounters(counters))

	printInfo("Serving on %s", StyleValue.Render(scfg.Addr))
	printDetail("GET /api/v1/render?size=800x600&region=full")
	return srv.ListenAndServe(ctx)
}

// serverConfig maps the config file onto server.Config.
func (c *CLI) serverConfig() server.Config {
	cfg := c.config()
	return server.Config{
		Addr:            cfg.Server.Addr,
		MaxPixels:       cfg.Server.MaxPixels,
		Limit:           cfg.Render.Limit,
		Workers:         cfg.Render.Workers,
		Palette:         cfg.Render.Palette,
		Mapping:         cfg.Render.Mapping,
		Theme:           cfg.Output.Theme,
		Format:          cfg.Output.Format,
		JPEGQuality:     cfg.Output.JPEGQuality,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
	}
}
