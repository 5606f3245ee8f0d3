package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/icons"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

func (r *Renderer) renderClusterBox(buf *bytes.Buffer, c *graph.Node) {
	x, y, w, h := c.Bounds()
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		num(x), num(y), num(w), num(h), num(r.cfg.BorderRadius), num(r.cfg.BorderRadius),
		r.palette.Get(theme.KeyClusterBg), r.palette.Get(theme.KeyBorder))
}

// renderClusterHeader masks the title band and the bottom padding of a
// cluster, hiding edge segments routed through them, and draws the title.
func (r *Renderer) renderClusterHeader(buf *bytes.Buffer, c *graph.Node) {
	x, y, w, h := c.Bounds()
	bg := r.palette.Get(theme.KeyClusterBg)
	inset := 1.0

	top := min(float64(graph.HeaderHeight), h/2)
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		num(x+inset), num(y+inset), num(w-2*inset), num(top-inset), bg)
	bottom := min(float64(graph.HeaderFooter), h/4)
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		num(x+inset), num(y+h-bottom), num(w-2*inset), num(bottom-inset), bg)

	fmt.Fprintf(buf, `<foreignObject x="%s" y="%s" width="%s" height="%s"><div xmlns="http://www.w3.org/1999/xhtml" class="cluster-label" style="display:flex;align-items:center;gap:%dpx;height:100%%;box-sizing:border-box;padding:0 %spx;font-family:%s;">`,
		num(x), num(y), num(w), num(top), graph.HeaderIconGap, num(r.cfg.Padding), r.cfg.FontFamily)
	if icon := icons.Sized(icons.Get(icons.ForGroup(c.Label)), graph.HeaderIconSize); icon != "" {
		fmt.Fprintf(buf, `<span style="display:inline-flex;align-items:center;">%s</span>`, icon)
	}
	fmt.Fprintf(buf, `<span>%s</span></div></foreignObject>`+"\n", overlay.EscapeXML(c.Label))
}

