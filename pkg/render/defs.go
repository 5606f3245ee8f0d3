package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

// ArrowMarkerID is the id of the arrowhead marker referenced by every edge.
const ArrowMarkerID = "arrow"

func (r *Renderer) renderDefs(buf *bytes.Buffer) {
	buf.WriteString("<defs>\n")
	fmt.Fprintf(buf, "<style type=\"text/css\"><![CDATA[%s%s]]></style>\n", r.css(), r.overlays.CSS())

	buf.WriteString("<script type=\"text/javascript\"><![CDATA[")
	buf.WriteString(overlay.Script())
	if r.liveReload {
		buf.WriteString(overlay.LiveReloadScript())
	}
	buf.WriteString("]]></script>\n")

	fmt.Fprintf(buf, `<marker id="%s" viewBox="0 0 10 10" refX="8" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`,
		ArrowMarkerID, r.palette.Get(theme.KeyArrow))
	buf.WriteString("\n</defs>\n")
}

func (r *Renderer) css() string {
	p := r.palette
	return fmt.Sprintf(`.edge-label{font-size:11px;fill:%s;text-anchor:middle;dominant-baseline:middle}`+
		`.cluster-label{font-size:%dpx;font-weight:600;color:%s}`,
		p.Get(theme.KeyTextFaded), graph.HeaderFontSize, p.Get(theme.KeyText))
}
