// Package pipeline turns a diagram document into a rendered SVG artifact.
//
// A render pass runs three stages, each also available on its own through
// [Assemble] and [Layout]:
//
//  1. Assemble: compose every element and relation and build the layout
//     graph (clusters, nodes, labelled edges)
//  2. Layout: position the graph with a [layout.Engine]
//  3. Render: write the positioned graph as one self-contained SVG
//
// [Generate] is the pure entry point: every pass creates its own overlay
// registry and compositors, so identical inputs produce byte-identical
// output. [Runner] adds an artifact cache and timing logs on top.
//
// # Usage
//
//	svg, err := pipeline.Generate(ctx, doc, pipeline.Options{
//	    Palette: "dark",
//	    RankDir: "LR",
//	})
//
// With caching:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil, logger)
//	result, err := runner.Generate(ctx, doc, opts)
//	if result.CacheHit {
//	    // served from cache
//	}
package pipeline

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/matzehuels/archview/pkg/compose"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/layout"
	"github.com/matzehuels/archview/pkg/observability"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/render"
	"github.com/matzehuels/archview/pkg/theme"
)

// Options configures one render pass.
type Options struct {
	// Palette is "light" or "dark"; anything else renders light.
	Palette string `json:"theme,omitempty"`
	// RankDir is one of TB, BT, LR, RL (case-insensitive).
	RankDir string `json:"layout,omitempty"`
	// NodeSep and RankSep are the layout spacings in pixels.
	NodeSep float64 `json:"nodesep,omitempty"`
	RankSep float64 `json:"ranksep,omitempty"`
	// LiveReload embeds the server-sent events client in the artifact.
	LiveReload bool `json:"live_reload,omitempty"`

	// Themes resolves the palette. Nil uses the built-in palettes.
	Themes *theme.Registry `json:"-"`
	// Config carries typography and layout defaults. Nil uses
	// theme.DefaultConfig.
	Config *theme.Config `json:"-"`
	// Engine positions the graph. Nil uses a shared Graphviz engine.
	Engine layout.Engine `json:"-"`
}

var defaultEngine = layout.NewGraphviz()

// SetDefaults normalizes the palette name and rank direction and fills
// unset fields from the configuration. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Config == nil {
		o.Config = theme.DefaultConfig()
	}
	if o.Themes == nil {
		o.Themes = theme.Default()
	}
	if o.Engine == nil {
		o.Engine = defaultEngine
	}
	o.Palette = theme.Normalize(o.Palette)
	o.RankDir = strings.ToUpper(strings.TrimSpace(o.RankDir))
	if o.RankDir == "" {
		o.RankDir = o.Config.RankDir
	}
	if o.NodeSep == 0 {
		o.NodeSep = o.Config.NodeSep
	}
	if o.RankSep == 0 {
		o.RankSep = o.Config.RankSep
	}
}

// Validate reports layout parameters the engine cannot honour as
// INVALID_LAYOUT errors.
func (o *Options) Validate() error {
	if !theme.ValidRankDir(o.RankDir) {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown rank direction %q (want one of %s)",
			o.RankDir, strings.Join(theme.RankDirs, ", "))
	}
	if o.NodeSep < 0 || o.RankSep < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "node and rank separation must not be negative")
	}
	return nil
}

// Generate renders doc to SVG. A nil document renders the empty diagram.
//
// Errors carry codes from pkg/errors: INVALID_DOCUMENT and
// INVALID_REFERENCE for document problems, INVALID_LAYOUT for bad options
// and RENDER_FAILED for anything that goes wrong inside layout or render.
func Generate(ctx context.Context, doc *diagram.Document, opts Options) (svg []byte, err error) {
	defer recoverRender(&err)

	p, err := layoutPass(ctx, doc, &opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, p.palette.Name())
	ropts := []render.Option{render.WithPalette(p.palette), render.WithConfig(opts.Config), render.WithOverlays(p.overlays)}
	if opts.LiveReload {
		ropts = append(ropts, render.WithLiveReload())
	}
	svg = render.New(ropts...).Render(p.graph)
	hooks.OnRenderComplete(ctx, p.palette.Name(), len(svg), time.Since(start), nil)
	return svg, nil
}

// Layout assembles and positions doc without rendering it. Errors are
// classified as in [Generate].
func Layout(ctx context.Context, doc *diagram.Document, opts Options) (g *graph.Graph, err error) {
	defer recoverRender(&err)

	p, err := layoutPass(ctx, doc, &opts)
	if err != nil {
		return nil, err
	}
	return p.graph, nil
}

// pass is the state of one render pass up to the render stage.
type pass struct {
	graph    *graph.Graph
	palette  *theme.Palette
	overlays *overlay.Registry
}

// Assemble validates doc and builds its layout graph without positioning
// it. Node sizes are final; coordinates are zero.
func Assemble(ctx context.Context, doc *diagram.Document, opts Options) (g *graph.Graph, err error) {
	defer recoverRender(&err)

	p, err := assemblePass(ctx, doc, &opts)
	if err != nil {
		return nil, err
	}
	return p.graph, nil
}

func assemblePass(ctx context.Context, doc *diagram.Document, opts *Options) (*pass, error) {
	if doc == nil {
		doc = diagram.Empty()
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	p := &pass{palette: opts.Themes.Resolve(opts.Palette)}
	p.overlays = overlay.NewRegistry(p.palette)
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnAssembleStart(ctx, len(doc.Elements), len(doc.Relations))
	assembler := graph.NewAssembler(
		compose.NewNodeCompositor(p.palette, opts.Config, p.overlays),
		compose.NewEdgeCompositor(p.palette, opts.Config),
		opts.Config,
	)
	g, err := assembler.Assemble(doc, graph.Options{RankDir: opts.RankDir, NodeSep: opts.NodeSep, RankSep: opts.RankSep})
	if err != nil {
		err = classifyAssembleError(err)
		hooks.OnAssembleComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnAssembleComplete(ctx, g.NodeCount(), time.Since(start), nil)
	p.graph = g
	return p, nil
}

func layoutPass(ctx context.Context, doc *diagram.Document, opts *Options) (*pass, error) {
	p, err := assemblePass(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	g := p.graph
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnLayoutStart(ctx, g.RankDir, g.NodeCount())
	if err := opts.Engine.Layout(ctx, g); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRender, err, "layout failed")
		}
		hooks.OnLayoutComplete(ctx, g.RankDir, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, g.RankDir, time.Since(start), nil)
	return p, nil
}

// recoverRender turns a panic inside a pass into a RENDER_FAILED error.
func recoverRender(err *error) {
	if r := recover(); r != nil {
		*err = errors.New(errors.ErrCodeRender, "render panicked: %v", r)
	}
}

// classifyAssembleError maps graph construction failures onto error codes.
func classifyAssembleError(err error) error {
	switch {
	case stderrors.Is(err, graph.ErrUnknownSourceNode), stderrors.Is(err, graph.ErrUnknownTargetNode):
		return errors.Wrap(errors.ErrCodeInvalidReference, err, "dangling relation")
	case stderrors.Is(err, graph.ErrDuplicateNodeID), stderrors.Is(err, graph.ErrInvalidNodeID),
		stderrors.Is(err, graph.ErrUnknownParent):
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid document")
	default:
		return errors.Wrap(errors.ErrCodeRender, err, "assemble failed")
	}
}
