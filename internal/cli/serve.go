package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archview/pkg/config"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/live"
	"github.com/matzehuels/archview/pkg/pipeline"
	"github.com/matzehuels/archview/pkg/server"
)

// errDashboardClosed ends the serve errgroup when the user quits the dashboard.
var errDashboardClosed = stderrors.New("dashboard closed")

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	port      int
	theme     string
	layout    string
	debounce  time.Duration
	dashboard bool
	redis     string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	defaults := config.Default()
	opts := serveOpts{
		port:     defaults.Server.Port,
		debounce: defaults.Server.Debounce.Duration,
	}

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a diagram with live reload",
		Long: `Render a diagram document, serve it over HTTP and re-render it whenever
the source file changes. Open browsers reload through server-sent events.

Endpoints:
  GET  /                         current diagram
  GET  /events                   reload notifications
  POST /api/generate-diagram     render a posted document
  GET  /api/current-diagram      current document, ?theme=light|dark
  GET  /api/current-data         current document as JSON`,
		Example: `  archview serve architecture.yaml
  archview serve architecture.yaml -p 8080 -t dark --dashboard
  archview serve architecture.yaml --redis localhost:6379`,
		Args: sourceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if cmd.Flags().Changed("debounce") {
				cfg.Server.Debounce.Duration = opts.debounce
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", opts.port, "HTTP port")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "palette: light or dark")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "rank direction: TB, BT, LR or RL")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "wait this long after the last change before re-rendering")
	cmd.Flags().BoolVar(&opts.dashboard, "dashboard", false, "show a live status view instead of logs")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "cache artifacts in redis at this address")

	return cmd
}

// runServe loads the source, then runs the watcher, the HTTP server and the
// optional dashboard until ctx is cancelled or one of them fails.
func (c *CLI) runServe(ctx context.Context, stdout io.Writer, input string, cfg *config.Config, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	// The dashboard owns the terminal; logs would tear it.
	if opts.dashboard {
		logger = log.New(io.Discard)
	}

	store, err := openServeCache(ctx, cfg, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := c.runnerFor(cfg, store)
	if err != nil {
		return err
	}
	runner.Logger = logger

	popts := renderOptions(cfg, opts.theme, opts.layout)
	popts.Themes = runner.Themes
	popts.SetDefaults()
	if err := popts.Validate(); err != nil {
		return err
	}

	liveOpts := []live.Option{
		live.WithDebounce(cfg.Server.Debounce.Duration),
		live.WithLogger(logger),
	}
	var updates chan live.Status
	if opts.dashboard {
		updates = make(chan live.Status, 1)
		liveOpts = append(liveOpts, live.WithStatusFunc(latestStatus(updates)))
	}

	ctrl := live.New(input, liveRender(runner, popts), liveOpts...)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := server.New(ctrl, runner, popts, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ctrl.Run(gctx) })
	g.Go(func() error { return srv.Serve(gctx, addr) })

	if opts.dashboard {
		url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		p := tea.NewProgram(newDashboard(url, ctrl.Status(), updates),
			tea.WithContext(gctx), tea.WithOutput(stdout), tea.WithInput(os.Stdin))
		g.Go(func() error {
			if _, err := p.Run(); err != nil && gctx.Err() == nil {
				return err
			}
			return errDashboardClosed
		})
	} else {
		printSuccess(stdout, "Serving %s", input)
		printFile(stdout, fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	}

	if err := g.Wait(); err != nil && !stderrors.Is(err, errDashboardClosed) {
		return err
	}
	return nil
}

// liveRender renders the watched document with the live reload client
// embedded.
func liveRender(runner *pipeline.Runner, opts pipeline.Options) live.RenderFunc {
	opts.LiveReload = true
	return func(ctx context.Context, doc *diagram.Document) ([]byte, error) {
		res, err := runner.Generate(ctx, doc, opts)
		if err != nil {
			return nil, err
		}
		return res.SVG, nil
	}
}

// latestStatus returns a status callback that keeps only the newest status
// in ch and never blocks the controller.
func latestStatus(ch chan live.Status) func(live.Status) {
	return func(s live.Status) {
		for {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}
