// Package graph holds the layout model of a diagram: cluster and element
// nodes with their box sizes, and the routed edges between them.
//
// # Overview
//
// A [Graph] is built once per render pass by an [Assembler] from a
// [diagram.Document]. The layout engine (pkg/layout) reads the sizes stored
// on nodes and edges and writes positions back; the renderer (pkg/render)
// reads the positioned graph. Nodes keep insertion order so every pass over
// the same document produces the same output.
//
// # Node Kinds
//
//   - [KindCluster]: one per distinct element group, containing its members
//   - [KindElement]: one per document element, carrying composed markup
//
// # Coordinates
//
// After layout all coordinates are pixels with a top-left origin. A node's
// X and Y are its center; a cluster's Width and Height are its full box.
//
// # Errors
//
// [Graph.AddNode] and [Graph.AddEdge] return the sentinel errors
// [ErrInvalidNodeID], [ErrDuplicateNodeID], [ErrUnknownParent],
// [ErrUnknownSourceNode] and [ErrUnknownTargetNode], wrapped with the
// offending id. Use [errors.Is] to test for them.
package graph
