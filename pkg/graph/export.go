package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Export is the JSON form of a laid-out graph. Markup is omitted; the export
// describes geometry only.
type Export struct {
	RankDir string       `json:"rankdir"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Nodes   []ExportNode `json:"nodes"`
	Edges   []ExportEdge `json:"edges"`
}

// ExportNode is a positioned node. X and Y are the top-left corner.
type ExportNode struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Parent string  `json:"parent,omitempty"`
	Type   string  `json:"type,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExportEdge is a routed edge.
type ExportEdge struct {
	ID     string  `json:"id"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Style  string  `json:"style,omitempty"`
	Points []Point `json:"points"`
	Label  *Point  `json:"label,omitempty"`
}

// ToExport converts g to its JSON form.
func ToExport(g *Graph) Export {
	out := Export{
		RankDir: g.RankDir,
		Width:   g.Width,
		Height:  g.Height,
		Nodes:   make([]ExportNode, 0, len(g.nodes)),
		Edges:   make([]ExportEdge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		x, y, w, h := n.Bounds()
		out.Nodes = append(out.Nodes, ExportNode{
			ID:     n.ID,
			Kind:   n.Kind.String(),
			Parent: n.Parent,
			Type:   n.Type,
			Mode:   string(n.Mode),
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})
	}
	for _, e := range g.edges {
		ee := ExportEdge{ID: e.ID, From: e.From, To: e.To, Style: e.Style, Points: e.Points}
		if ee.Points == nil {
			ee.Points = []Point{}
		}
		if e.HasLabel {
			ee.Label = &Point{X: e.LabelX, Y: e.LabelY}
		}
		out.Edges = append(out.Edges, ee)
	}
	return out
}

// MarshalGraph encodes the geometry of g as indented JSON.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes the geometry of g as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToExport(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes the geometry of g to path.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
