package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archview/pkg/cache"
	"github.com/matzehuels/archview/pkg/config"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/layout"
	"github.com/matzehuels/archview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty loads the default location.
	configPath string
	// engine lays out diagrams; nil uses Graphviz.
	engine layout.Engine
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "backend", cfg.Cache.Backend)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for one-shot CLI renders, backed by
// the local file cache.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return c.runnerFor(cfg, store)
}

// runnerFor wraps store in a runner configured from cfg.
func (c *CLI) runnerFor(cfg *config.Config, store cache.Cache) (*pipeline.Runner, error) {
	themes, err := cfg.Themes()
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cfg.Keyer(), c.engine, c.Logger)
	r.Themes = themes
	if cfg.Cache.TTL.Duration > 0 {
		r.TTL = cfg.Cache.TTL.Duration
	}
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openServeCache opens the cache for `serve`: redis when an address is
// given on the command line, the configured backend otherwise.
func openServeCache(ctx context.Context, cfg *config.Config, redisAddr string) (cache.Cache, error) {
	if redisAddr != "" {
		cfg.Cache.Backend = config.BackendRedis
		cfg.Cache.RedisAddr = redisAddr
	}
	return cfg.OpenCache(ctx)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory (<user cache dir>/archview/artifacts).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// sourceArg accepts exactly one diagram source path with a supported
// extension.
func sourceArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return errors.ValidateSourcePath(args[0])
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderOptions builds pipeline options from the configuration, with
// non-empty flag values taking precedence.
func renderOptions(cfg *config.Config, themeFlag, layoutFlag string) pipeline.Options {
	opts := pipeline.Options{
		Palette: cfg.Render.Theme,
		RankDir: cfg.Render.Layout,
		NodeSep: cfg.Render.NodeSep,
		RankSep: cfg.Render.RankSep,
	}
	if themeFlag != "" {
		opts.Palette = themeFlag
	}
	if layoutFlag != "" {
		opts.RankDir = layoutFlag
	}
	return opts
}
