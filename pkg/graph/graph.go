package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/shape"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Element ids and group names share one namespace.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned by [Graph.AddNode] when Parent names no
	// cluster in the graph.
	ErrUnknownParent = errors.New("unknown parent cluster")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// NodeKind distinguishes clusters from diagram elements.
type NodeKind int

const (
	// KindElement is a document element with composed content.
	KindElement NodeKind = iota
	// KindCluster is a group box containing elements.
	KindCluster
)

func (k NodeKind) String() string {
	if k == KindCluster {
		return "cluster"
	}
	return "element"
}

// Point is a position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a box in the layout.
//
// Before layout, Width and Height are the size the engine must reserve. For
// clusters these start as the header size and become the full cluster box
// once the layout has been applied.
type Node struct {
	ID     string
	Kind   NodeKind
	Label  string
	Parent string

	Width  float64
	Height float64

	// HeaderWidth and HeaderHeight are the title band a cluster reserves.
	HeaderWidth  float64
	HeaderHeight float64

	// Element content.
	Type   string
	Shape  *shape.Spec
	Markup string
	Mode   diagram.ContentMode

	// Center, set by the layout.
	X float64
	Y float64
}

// IsCluster reports whether the node is a group box.
func (n *Node) IsCluster() bool { return n.Kind == KindCluster }

// Bounds returns the node's top-left corner and size.
func (n *Node) Bounds() (x, y, w, h float64) {
	return n.X - n.Width/2, n.Y - n.Height/2, n.Width, n.Height
}

// Edge is a directed connection between two element nodes.
type Edge struct {
	ID    string
	From  string
	To    string
	Style string
	Color string

	// Label box reserved by the layout. HasLabel is false when the relation
	// carries no label.
	HasLabel    bool
	LabelWidth  float64
	LabelHeight float64
	LabelMarkup string

	// Routed geometry, set by the layout. Points holds the B-spline control
	// points followed by the arrow tip when Graphviz reported one.
	Points []Point
	LabelX float64
	LabelY float64
}

// Graph is an insertion-ordered set of nodes and edges plus the layout
// parameters and the resulting extent.
//
// The zero value is not usable; use [New]. A Graph is owned by one render
// pass and is not safe for concurrent use.
type Graph struct {
	RankDir string
	NodeSep float64
	RankSep float64

	// Extent of the laid-out drawing, set by the layout.
	Width  float64
	Height float64

	nodes []*Node
	index map[string]*Node
	edges []*Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]*Node)}
}

// AddNode appends a node. A non-empty Parent must name an existing cluster.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
	}
	if n.Parent != "" {
		p, ok := g.index[n.Parent]
		if !ok || !p.IsCluster() {
			return fmt.Errorf("%w: %q", ErrUnknownParent, n.Parent)
		}
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.index[n.ID] = node
	return nil
}

// AddEdge appends an edge between two existing nodes. An empty ID is
// replaced by "e<index>".
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTargetNode, e.To)
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("e%d", len(g.edges))
	}
	g.edges = append(g.edges, &e)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice is a copy,
// the nodes are shared.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes, clusters included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Clusters returns the cluster nodes in insertion order.
func (g *Graph) Clusters() []*Node {
	return g.filter(func(n *Node) bool { return n.IsCluster() })
}

// Elements returns the element nodes in insertion order.
func (g *Graph) Elements() []*Node {
	return g.filter(func(n *Node) bool { return !n.IsCluster() })
}

// Members returns the nodes whose parent is the given cluster.
func (g *Graph) Members(clusterID string) []*Node {
	return g.filter(func(n *Node) bool { return n.Parent == clusterID })
}

// TopLevel returns the nodes without a parent.
func (g *Graph) TopLevel() []*Node {
	return g.filter(func(n *Node) bool { return n.Parent == "" })
}

func (g *Graph) filter(keep func(*Node) bool) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
