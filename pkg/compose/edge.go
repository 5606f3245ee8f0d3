package compose

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/fonts"
	"github.com/matzehuels/archview/pkg/icons"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

// Edge label metrics, in pixels.
const (
	LabelWidth     = 180
	LabelHeight    = 50
	LabelFontSize  = 11
	PlainLabelPadX = 6
	PlainLabelH    = 20
)

// EdgeCompositor composes relation labels.
type EdgeCompositor struct {
	palette *theme.Palette
	cfg     *theme.Config
}

// NewEdgeCompositor returns an edge label compositor styled with p and cfg.
func NewEdgeCompositor(p *theme.Palette, cfg *theme.Config) *EdgeCompositor {
	return &EdgeCompositor{palette: p, cfg: cfg}
}

// LabelSize returns the box the layout must reserve for r's label. ok is
// false when the relation has no label. An explicit width or height wins;
// structured and HTML labels default to 180×50, plain labels are measured.
func (c *EdgeCompositor) LabelSize(r *diagram.Relation) (w, h float64, ok bool) {
	switch r.LabelMode() {
	case diagram.LabelStructured, diagram.LabelHTML:
		return sizeOr(r.Width, LabelWidth), sizeOr(r.Height, LabelHeight), true
	case diagram.LabelPlain:
		tw := math.Ceil(fonts.Width(r.Label, LabelFontSize, fonts.Regular)) + 2*PlainLabelPadX
		return sizeOr(r.Width, tw), sizeOr(r.Height, PlainLabelH), true
	default:
		return 0, 0, false
	}
}

// Compose renders r's label inside a w×h box with its origin at the top-left.
func (c *EdgeCompositor) Compose(r *diagram.Relation, w, h float64) string {
	switch r.LabelMode() {
	case diagram.LabelStructured:
		return c.structured(r, w, h)
	case diagram.LabelHTML:
		return fmt.Sprintf(`<foreignObject width="%s" height="%s"><div xmlns="%s" style="font-family:%s;height:100%%;width:100%%;box-sizing:border-box;">%s</div></foreignObject>`,
			num(w), num(h), xhtmlNS, c.cfg.FontFamily, r.HTMLLabel)
	case diagram.LabelPlain:
		return fmt.Sprintf(`<rect width="%s" height="%s" fill="%s"/><text x="%s" y="%s" class="edge-label">%s</text>`,
			num(w), num(h), c.palette.Get(theme.KeyBackground), num(w/2), num(h/2), overlay.EscapeXML(r.Label))
	default:
		return ""
	}
}

func (c *EdgeCompositor) structured(r *diagram.Relation, w, h float64) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<foreignObject width="%s" height="%s"><div xmlns="%s" style="font-family:%s;color:%s;padding:10px;height:100%%;width:100%%;box-sizing:border-box;display:flex;flex-direction:column;justify-content:center;background-color:%s;border:1px solid %s;border-radius:%spx;"><div>`,
		num(w), num(h), xhtmlNS, c.cfg.FontFamily, c.palette.Get(theme.KeyText),
		c.palette.Get(theme.KeyAPI), c.palette.Get(theme.KeyBorder), num(c.cfg.BorderRadius))
	if r.Title != "" {
		fmt.Fprintf(&buf, `<h4 style="text-align:center;margin:0 0 8px 0;font-weight:600;">%s</h4>`, overlay.EscapeXML(r.Title))
	}
	if r.Subtitle != "" {
		fmt.Fprintf(&buf, `<p style="text-align:center;margin:0 0 8px 0;font-size:12px;color:%s;">%s</p>`,
			c.palette.Get(theme.KeyTextFaded), overlay.EscapeXML(r.Subtitle))
	}
	if len(r.ContentList) > 0 {
		buf.WriteString(`<ul style="text-align:left;padding-left:15px;margin:0;list-style:none;">`)
		for _, item := range r.ContentList {
			buf.WriteString(`<li style="display:flex;align-items:center;margin-bottom:5px;font-size:13px;">`)
			if icon := icons.Get(item.Symbol); icon != "" {
				fmt.Fprintf(&buf, `<div style="margin-right:5px;">%s</div>`, icon)
			}
			fmt.Fprintf(&buf, `<span>%s</span></li>`, overlay.EscapeXML(item.Label))
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</div></div></foreignObject>`)
	return buf.String()
}
