// Package layout positions a [graph.Graph] with Graphviz.
//
// The [Graphviz] engine writes the graph as DOT text with fixed-size boxes,
// runs the dot layout in-process through github.com/goccy/go-graphviz and
// reads the attributes dot attaches (bb, pos, lp) from the same cgraph
// graph with [Read]. Only sizes go in
// and only geometry comes out: labels, markup and styling never reach
// Graphviz, so the layout is independent of how content is drawn.
//
// Synthetic identifiers keep the round trip free of quoting concerns:
// elements become n<index>, clusters cluster_<index> and edges e<index>, with
// indices taken from the graph's insertion order.
//
// After [Apply] every coordinate is in pixels with the origin at the top-left
// of the drawing.
package layout
