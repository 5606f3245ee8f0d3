package layout

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Attrs holds the attributes read from one laid-out graph object.
type Attrs map[string]string

// EdgeStmt is a laid-out edge between two DOT node names.
type EdgeStmt struct {
	From  string
	To    string
	Attrs Attrs
}

// Positioned is the geometry of a laid-out graph, keyed by DOT names.
type Positioned struct {
	Graph    Attrs
	Nodes    map[string]Attrs
	Clusters map[string]Attrs
	Edges    []EdgeStmt
}

// Attributes consumed by [Apply], per object kind.
var (
	graphAttrs = []string{"bb"}
	nodeAttrs  = []string{"pos", "width", "height"}
	edgeAttrs  = []string{"id", "pos", "lp"}
)

// Read collects the layout attributes dot attached to g. g must have been
// rendered to DOT or XDOT, or parsed from positioned DOT text. Only
// top-level cluster subgraphs are read.
func Read(g *graphviz.Graph) (*Positioned, error) {
	out := &Positioned{
		Graph:    collect(g.GetStr, graphAttrs),
		Nodes:    make(map[string]Attrs),
		Clusters: make(map[string]Attrs),
	}

	sub, err := g.FirstSubGraph()
	for ; err == nil && sub != nil; sub, err = sub.NextSubGraph() {
		name, err := sub.Name()
		if err != nil {
			return nil, fmt.Errorf("subgraph name: %w", err)
		}
		if strings.HasPrefix(name, "cluster") {
			out.Clusters[name] = collect(sub.GetStr, graphAttrs)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("walk subgraphs: %w", err)
	}

	n, err := g.FirstNode()
	for ; err == nil && n != nil; n, err = g.NextNode(n) {
		name, err := n.Name()
		if err != nil {
			return nil, fmt.Errorf("node name: %w", err)
		}
		out.Nodes[name] = collect(n.GetStr, nodeAttrs)
		edges, err := outEdges(g, n, name)
		if err != nil {
			return nil, err
		}
		out.Edges = append(out.Edges, edges...)
	}
	if err != nil {
		return nil, fmt.Errorf("walk nodes: %w", err)
	}
	return out, nil
}

func outEdges(g *graphviz.Graph, tail *graphviz.Node, from string) ([]EdgeStmt, error) {
	var out []EdgeStmt
	e, err := g.FirstOut(tail)
	for ; err == nil && e != nil; e, err = g.NextOut(e) {
		head, err := e.Head()
		if err != nil {
			return nil, fmt.Errorf("edge head: %w", err)
		}
		to, err := head.Name()
		if err != nil {
			return nil, fmt.Errorf("edge head name: %w", err)
		}
		out = append(out, EdgeStmt{From: from, To: to, Attrs: collect(e.GetStr, edgeAttrs)})
	}
	if err != nil {
		return nil, fmt.Errorf("walk edges of %s: %w", from, err)
	}
	return out, nil
}

// collect reads names through get, skipping unset attributes.
func collect(get func(string) string, names []string) Attrs {
	a := make(Attrs, len(names))
	for _, name := range names {
		if v := get(name); v != "" {
			a[name] = v
		}
	}
	return a
}
