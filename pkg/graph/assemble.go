package graph

import (
	"fmt"

	"github.com/matzehuels/archview/pkg/compose"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/fonts"
	"github.com/matzehuels/archview/pkg/theme"
)

// Cluster header metrics, in pixels.
const (
	HeaderHeight   = 56
	HeaderFooter   = 14
	HeaderFontSize = 16
	HeaderIconSize = 18
	HeaderIconGap  = 8
)

// Options are the layout parameters stored on the assembled graph.
type Options struct {
	RankDir string
	NodeSep float64
	RankSep float64
}

// Assembler turns a document into a [Graph] using the compositors of one
// render pass.
type Assembler struct {
	nodes *compose.NodeCompositor
	edges *compose.EdgeCompositor
	cfg   *theme.Config
}

// NewAssembler returns an assembler that composes element bodies with nodes
// and edge labels with edges.
func NewAssembler(nodes *compose.NodeCompositor, edges *compose.EdgeCompositor, cfg *theme.Config) *Assembler {
	return &Assembler{nodes: nodes, edges: edges, cfg: cfg}
}

// Assemble builds the layout graph: one cluster per distinct group in
// first-appearance order, one node per element and one edge per relation.
// Zero layout options fall back to the configuration defaults.
func (a *Assembler) Assemble(doc *diagram.Document, opts Options) (*Graph, error) {
	g := New()
	g.RankDir = orDefault(opts.RankDir, a.cfg.RankDir)
	g.NodeSep = sizeOr(opts.NodeSep, a.cfg.NodeSep)
	g.RankSep = sizeOr(opts.RankSep, a.cfg.RankSep)

	for _, group := range doc.Groups() {
		w, h := a.HeaderSize(group)
		err := g.AddNode(Node{
			ID:           group,
			Kind:         KindCluster,
			Label:        group,
			Width:        w,
			Height:       h,
			HeaderWidth:  w,
			HeaderHeight: h,
		})
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group, err)
		}
	}

	for i := range doc.Elements {
		e := &doc.Elements[i]
		content := a.nodes.Compose(e)
		err := g.AddNode(Node{
			ID:     e.ID,
			Kind:   KindElement,
			Label:  e.Title,
			Parent: e.Group,
			Width:  content.Width,
			Height: content.Height,
			Type:   e.Type,
			Shape:  e.Shape,
			Markup: content.Markup,
			Mode:   content.Mode,
		})
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", e.ID, err)
		}
	}

	for i := range doc.Relations {
		r := &doc.Relations[i]
		edge := Edge{
			ID:    fmt.Sprintf("e%d", i),
			From:  r.From,
			To:    r.To,
			Style: r.Style,
			Color: r.Color,
		}
		if w, h, ok := a.edges.LabelSize(r); ok {
			edge.HasLabel = true
			edge.LabelWidth, edge.LabelHeight = w, h
			edge.LabelMarkup = a.edges.Compose(r, w, h)
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("relation %d (%s -> %s): %w", i, r.From, r.To, err)
		}
	}
	return g, nil
}

// HeaderSize returns the title band a cluster labelled title reserves:
// icon, gap and bold title text between the configured paddings.
func (a *Assembler) HeaderSize(title string) (w, h float64) {
	text := fonts.CeilWidth(title, HeaderFontSize, fonts.Bold)
	return 2*a.cfg.Padding + HeaderIconSize + HeaderIconGap + text, HeaderHeight
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func sizeOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
