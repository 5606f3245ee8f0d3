package compose

import (
	"fmt"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

// Default box sizes per content mode.
const (
	ListWidth      = 400
	ListHeight     = 300
	HTMLWidth      = 200
	HTMLHeight     = 100
	TableWidth     = 500
	TableHeight    = 260
	FallbackWidth  = 200
	FallbackHeight = 100
)

// Content is a composed node body.
type Content struct {
	Markup string
	Width  float64
	Height float64
	Mode   diagram.ContentMode
}

// NodeCompositor composes element bodies for one render pass.
type NodeCompositor struct {
	palette  *theme.Palette
	cfg      *theme.Config
	overlays *overlay.Registry
}

// NewNodeCompositor returns a compositor that styles with p and cfg and
// registers modals into overlays.
func NewNodeCompositor(p *theme.Palette, cfg *theme.Config, overlays *overlay.Registry) *NodeCompositor {
	return &NodeCompositor{palette: p, cfg: cfg, overlays: overlays}
}

// Size returns the box an element will occupy without composing it.
// Explicit width/height on the element override the mode defaults.
func Size(e *diagram.Element) (w, h float64) {
	var dw, dh float64
	switch e.Mode() {
	case diagram.ModeList:
		dw, dh = ListWidth, ListHeight
	case diagram.ModeHTML:
		dw, dh = HTMLWidth, HTMLHeight
	case diagram.ModeTable:
		dw, dh = TableWidth, TableHeight
	default:
		dw, dh = FallbackWidth, FallbackHeight
	}
	return sizeOr(e.Width, dw), sizeOr(e.Height, dh)
}

// Compose renders the element body chosen by [diagram.Element.Mode].
func (c *NodeCompositor) Compose(e *diagram.Element) Content {
	w, h := Size(e)
	mode := e.Mode()

	var markup string
	switch mode {
	case diagram.ModeList:
		markup = c.list(e, w, h)
	case diagram.ModeHTML:
		markup = c.html(e, w, h)
	case diagram.ModeTable:
		markup = c.table(e, w, h)
	default:
		markup = fmt.Sprintf(`<text x="10" y="20" fill="%s">No content</text>`, c.palette.Get(theme.KeyTextFaded))
	}
	return Content{Markup: markup, Width: w, Height: h, Mode: mode}
}

func (c *NodeCompositor) html(e *diagram.Element, w, h float64) string {
	return fmt.Sprintf(`<foreignObject width="%s" height="%s"><div xmlns="%s" style="font-family:%s;color:%s;height:100%%;width:100%%;box-sizing:border-box;display:flex;align-items:center;justify-content:center;"><div>%s</div></div></foreignObject>`,
		num(w), num(h), xhtmlNS, c.cfg.FontFamily, c.palette.Get(theme.KeyText), e.HTMLContent)
}
