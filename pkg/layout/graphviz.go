package layout

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/theme"
)

// Engine positions a graph in place.
type Engine interface {
	Layout(ctx context.Context, g *graph.Graph) error
}

// Graphviz runs the dot layout in-process.
//
// The Graphviz runtime is created on first use and reused; layouts are
// serialized on it. The zero value is ready to use. Call Close to release
// the runtime.
type Graphviz struct {
	mu sync.Mutex
	gv *graphviz.Graphviz
}

// NewGraphviz returns a Graphviz engine.
func NewGraphviz() *Graphviz { return &Graphviz{} }

// Layout validates the rank direction, runs dot on g and applies the result.
// An unknown rank direction is an INVALID_LAYOUT error.
func (e *Graphviz) Layout(ctx context.Context, g *graph.Graph) error {
	if !theme.ValidRankDir(g.RankDir) {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown rank direction %q (want one of TB, BT, LR, RL)", g.RankDir)
	}
	pos, err := e.run(ctx, ToDOT(g))
	if err != nil {
		return err
	}
	return Apply(g, pos)
}

// run lays out dot and reads the positioned geometry back from the same
// cgraph graph.
func (e *Graphviz) run(ctx context.Context, dot string) (*Positioned, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gv == nil {
		gv, err := graphviz.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("init graphviz: %w", err)
		}
		e.gv = gv
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	// Rendering XDOT attaches pos, bb and lp to the graph objects.
	if err := e.gv.Render(ctx, g, graphviz.XDOT, io.Discard); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	pos, err := Read(g)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return pos, nil
}

// Close releases the Graphviz runtime.
func (e *Graphviz) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gv == nil {
		return nil
	}
	err := e.gv.Close()
	e.gv = nil
	return err
}
