package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/shape"
	"github.com/matzehuels/archview/pkg/theme"
)

// Margin is the space around the drawing on every side, in pixels.
const Margin = 25

// Canvas size used when the graph has no extent.
const (
	EmptyWidth  = 1200
	EmptyHeight = 800
)

// Option configures a [Renderer].
type Option func(*Renderer)

// WithPalette sets the color palette. The default is light.
func WithPalette(p *theme.Palette) Option { return func(r *Renderer) { r.palette = p } }

// WithConfig sets typography and radii. The default is [theme.DefaultConfig].
func WithConfig(cfg *theme.Config) Option { return func(r *Renderer) { r.cfg = cfg } }

// WithOverlays sets the registry whose modals are embedded in the document.
func WithOverlays(reg *overlay.Registry) Option { return func(r *Renderer) { r.overlays = reg } }

// WithLiveReload embeds the server-sent events client that reloads the page
// when the served diagram changes.
func WithLiveReload() Option { return func(r *Renderer) { r.liveReload = true } }

// Renderer draws laid-out graphs. It holds no per-render state and may be
// reused, but the overlay registry it embeds belongs to one render pass.
type Renderer struct {
	palette    *theme.Palette
	cfg        *theme.Config
	overlays   *overlay.Registry
	liveReload bool
}

// New returns a renderer configured by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.palette == nil {
		r.palette = theme.Resolve(theme.Light)
	}
	if r.cfg == nil {
		r.cfg = theme.DefaultConfig()
	}
	if r.overlays == nil {
		r.overlays = overlay.NewRegistry(r.palette)
	}
	return r
}

// Render returns the SVG document for g.
func (r *Renderer) Render(g *graph.Graph) []byte {
	w, h := float64(EmptyWidth), float64(EmptyHeight)
	if g.Width > 0 && g.Height > 0 {
		w, h = g.Width+2*Margin, g.Height+2*Margin
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="background-color:%s;font-family:%s;">`,
		num(w), num(h), num(w), num(h), r.palette.Get(theme.KeyBackground), r.cfg.FontFamily)
	buf.WriteString("\n")

	r.renderDefs(&buf)

	fmt.Fprintf(&buf, "<g transform=\"translate(%d,%d)\">\n", Margin, Margin)
	clusters := g.Clusters()
	for _, c := range clusters {
		r.renderClusterBox(&buf, c)
	}
	for _, e := range g.Edges() {
		r.renderEdge(&buf, e)
	}
	for _, n := range g.Elements() {
		r.renderNode(&buf, n)
	}
	for _, c := range clusters {
		r.renderClusterHeader(&buf, c)
	}
	buf.WriteString("</g>\n")

	buf.WriteString(`<foreignObject x="0" y="0" width="100%" height="100%" style="pointer-events:none;">`)
	buf.WriteString(r.overlays.Markup())
	buf.WriteString("</foreignObject>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *Renderer) renderNode(buf *bytes.Buffer, n *graph.Node) {
	x, y, w, h := n.Bounds()
	fmt.Fprintf(buf, `<g transform="translate(%s,%s)" data-element-id="%s">`, num(x), num(y), overlay.EscapeXML(n.ID))
	buf.WriteString(shape.Build(n.Shape, w, h, r.palette.Category(n.Type), r.palette.Get(theme.KeyBorder), r.cfg.BorderRadius))
	buf.WriteString(n.Markup)
	buf.WriteString("</g>\n")
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	return shape.Num(shape.Round3(v))
}
