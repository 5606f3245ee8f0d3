package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

// Stroke dash patterns by relation style. Any other style is solid.
var dashes = map[string]string{
	"dashed": "5, 5",
	"dotted": "2, 3",
}

func (r *Renderer) renderEdge(buf *bytes.Buffer, e *graph.Edge) {
	d := PathData(e.Points)
	if d == "" {
		return
	}
	stroke := e.Color
	if stroke == "" {
		stroke = r.palette.Get(theme.KeyBorder)
	}
	fmt.Fprintf(buf, `<path d="%s" fill="none" stroke="%s" stroke-width="2" marker-end="url(#%s)"`,
		d, overlay.EscapeXML(stroke), ArrowMarkerID)
	if dash, ok := dashes[strings.ToLower(e.Style)]; ok {
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, dash)
	}
	buf.WriteString("/>\n")

	if e.HasLabel && e.LabelMarkup != "" {
		fmt.Fprintf(buf, `<g transform="translate(%s,%s)">%s</g>`+"\n",
			num(e.LabelX-e.LabelWidth/2), num(e.LabelY-e.LabelHeight/2), e.LabelMarkup)
	}
}

// PathData returns the SVG path for a routed edge: cubic Bézier segments
// through the spline control points, then straight segments through any
// remaining points such as the arrow tip. Fewer than two points yield "".
func PathData(pts []graph.Point) string {
	if len(pts) < 2 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(pts[0].X), num(pts[0].Y))
	i := 1
	for ; i+2 < len(pts); i += 3 {
		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			num(pts[i].X), num(pts[i].Y), num(pts[i+1].X), num(pts[i+1].Y), num(pts[i+2].X), num(pts[i+2].Y))
	}
	for ; i < len(pts); i++ {
		fmt.Fprintf(&b, " L %s %s", num(pts[i].X), num(pts[i].Y))
	}
	return b.String()
}
