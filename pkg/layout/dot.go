package layout

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/archview/pkg/graph"
)

// pointsPerInch converts pixel sizes to Graphviz inches. Graphviz lays out at
// 72 points per inch and we treat one point as one pixel.
const pointsPerInch = 72

// ClusterMargin is the padding Graphviz keeps between a cluster border and
// its members.
const ClusterMargin = 14

// ids assigns the synthetic DOT identifiers of g.
type ids struct {
	nodes map[string]string
	back  map[string]*graph.Node
	edges map[string]*graph.Edge
}

func newIDs(g *graph.Graph) *ids {
	m := &ids{
		nodes: make(map[string]string),
		back:  make(map[string]*graph.Node),
		edges: make(map[string]*graph.Edge),
	}
	for i, n := range g.Nodes() {
		id := fmt.Sprintf("n%d", i)
		if n.IsCluster() {
			id = fmt.Sprintf("cluster_%d", i)
		}
		m.nodes[n.ID] = id
		m.back[id] = n
	}
	for i, e := range g.Edges() {
		m.edges[fmt.Sprintf("e%d", i)] = e
	}
	return m
}

// ToDOT writes g as a DOT digraph. Element nodes are fixed-size boxes,
// clusters become subgraphs with a fixed-size header label and edge labels
// are fixed-size HTML cells, so Graphviz reserves exactly the space the
// renderer will draw into.
func ToDOT(g *graph.Graph) string {
	m := newIDs(g)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  graph [rankdir=%s, nodesep=%s, ranksep=%s, compound=true];\n",
		g.RankDir, inches(g.NodeSep), inches(g.RankSep))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")

	for _, c := range g.Clusters() {
		fmt.Fprintf(&buf, "  subgraph %s {\n", m.nodes[c.ID])
		fmt.Fprintf(&buf, "    label=%s;\n", fixedCell(c.HeaderWidth, c.HeaderHeight))
		fmt.Fprintf(&buf, "    labelloc=t;\n    labeljust=l;\n    margin=%d;\n", ClusterMargin)
		for _, n := range g.Members(c.ID) {
			writeNode(&buf, "    ", m.nodes[n.ID], n)
		}
		buf.WriteString("  }\n")
	}
	for _, n := range g.TopLevel() {
		if !n.IsCluster() {
			writeNode(&buf, "  ", m.nodes[n.ID], n)
		}
	}

	for i, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s [id=e%d", m.nodes[e.From], m.nodes[e.To], i)
		if e.HasLabel {
			fmt.Fprintf(&buf, ", label=%s", fixedCell(e.LabelWidth, e.LabelHeight))
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent, id string, n *graph.Node) {
	fmt.Fprintf(buf, "%s%s [width=%s, height=%s];\n", indent, id, inches(n.Width), inches(n.Height))
}

// fixedCell is an empty HTML label of exactly w×h points.
func fixedCell(w, h float64) string {
	return fmt.Sprintf(`<<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="0" CELLPADDING="0"><TR><TD FIXEDSIZE="TRUE" WIDTH="%d" HEIGHT="%d"></TD></TR></TABLE>>`,
		int(math.Ceil(w)), int(math.Ceil(h)))
}

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 4, 64)
}
