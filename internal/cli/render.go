package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/pipeline"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file, "-" for stdout; empty derives <input>.svg
	theme     string  // palette name; empty uses the config
	layout    string  // rank direction; empty uses the config
	nodeSep   float64 // node separation in pixels; zero uses the config
	rankSep   float64 // rank separation in pixels; zero uses the config
	noCache   bool    // bypass the local artifact cache
	graphJSON string  // also write the positioned graph as JSON
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a diagram document to SVG",
		Long: `Render a YAML or JSON diagram document to a self-contained SVG file.

Rendered artifacts are cached under the user cache directory, keyed by the
document content and render options; use --no-cache to bypass the cache.`,
		Example: `  archview render architecture.yaml
  archview render architecture.yaml -t dark -l LR -o docs/architecture.svg
  archview render architecture.json -o - > out.svg`,
		Args: sourceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <file>.svg, - for stdout)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "palette: light or dark")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "rank direction: TB, BT, LR or RL")
	cmd.Flags().Float64Var(&opts.nodeSep, "nodesep", 0, "horizontal node separation in pixels")
	cmd.Flags().Float64Var(&opts.rankSep, "ranksep", 0, "rank separation in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.graphJSON, "graph-json", "", "also write the positioned graph as JSON to this file")

	return cmd
}

// runRender decodes input, renders it and writes the SVG to the output.
func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	doc, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}
	for _, w := range doc.Lint() {
		logger.Warn(w)
	}

	popts := renderOptions(cfg, opts.theme, opts.layout)
	if opts.nodeSep > 0 {
		popts.NodeSep = opts.nodeSep
	}
	if opts.rankSep > 0 {
		popts.RankSep = opts.rankSep
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = basePath(input) + ".svg"
	}
	// Status lines go to stderr when the SVG itself is written to stdout.
	status := stdout
	if outputPath == stdoutPath {
		status = stderr
	}

	spinner := newSpinner(ctx, stderr, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	res, err := runner.Generate(ctx, doc, popts)
	spinner.Stop()
	if err != nil {
		printError(status, "Render failed")
		return err
	}

	if err := writeOutput(outputPath, res.SVG, stdout); err != nil {
		return err
	}
	if opts.graphJSON != "" {
		if err := writeGraphJSON(ctx, doc, popts, runner, opts.graphJSON); err != nil {
			return err
		}
	}

	prog.done("Rendered " + input)
	printSuccess(status, "Rendered %s", input)
	printStats(status, len(doc.Elements), len(doc.Relations), len(res.SVG), res.CacheHit)
	if outputPath != stdoutPath {
		printFile(status, outputPath)
	}
	if opts.graphJSON != "" {
		printFile(status, opts.graphJSON)
	}
	return nil
}

// writeGraphJSON lays doc out again and exports the positioned graph.
func writeGraphJSON(ctx context.Context, doc *diagram.Document, opts pipeline.Options, runner *pipeline.Runner, path string) error {
	opts.Engine = runner.Engine
	opts.Themes = runner.Themes
	g, err := pipeline.Layout(ctx, doc, opts)
	if err != nil {
		return err
	}
	return graph.WriteGraphFile(g, path)
}

// basePath strips the extension from the input path.
func basePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
