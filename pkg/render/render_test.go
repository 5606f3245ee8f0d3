package render

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/archview/pkg/compose"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/icons"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/shape"
	"github.com/matzehuels/archview/pkg/theme"
)

// assemble builds the graph for doc and places nodes on a simple grid in
// place of a layout engine.
func assemble(t *testing.T, doc *diagram.Document, palette string) (*graph.Graph, *overlay.Registry) {
	t.Helper()
	p := theme.Resolve(palette)
	cfg := theme.DefaultConfig()
	reg := overlay.NewRegistry(p)
	a := graph.NewAssembler(compose.NewNodeCompositor(p, cfg, reg), compose.NewEdgeCompositor(p, cfg), cfg)
	g, err := a.Assemble(doc, graph.Options{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	y := 0.0
	for _, n := range g.Elements() {
		n.X, n.Y = 300, y+n.Height/2
		y += n.Height + 70
	}
	for _, c := range g.Clusters() {
		c.X, c.Y, c.Width, c.Height = 300, y/2, 600, y
	}
	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		e.Points = []graph.Point{
			{X: from.X, Y: from.Y + from.Height/2},
			{X: from.X, Y: from.Y + from.Height/2 + 10},
			{X: to.X, Y: to.Y - to.Height/2 - 20},
			{X: to.X, Y: to.Y - to.Height/2 - 10},
			{X: to.X, Y: to.Y - to.Height/2},
		}
		e.LabelX, e.LabelY = from.X, (from.Y+to.Y)/2
	}
	g.Width, g.Height = 600, y
	return g, reg
}

func wellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("output is not well-formed XML: %v\n%s", err, svg)
		}
	}
}

func TestRenderScenario(t *testing.T) {
	doc := &diagram.Document{
		Elements: []diagram.Element{
			{ID: "user", Type: "person", Title: "User"},
			{ID: "db", Type: "database", Title: "Orders DB"},
		},
		Relations: []diagram.Relation{{From: "user", To: "db", Label: "reads"}},
	}
	g, reg := assemble(t, doc, theme.Light)
	svg := New(WithOverlays(reg)).Render(g)
	wellFormed(t, svg)
	out := string(svg)

	if n := strings.Count(out, "data-element-id="); n != 2 {
		t.Errorf("element groups = %d, want 2", n)
	}
	for _, fill := range []string{`fill="#e0f2fe"`, `fill="#fef9c3"`} {
		if !strings.Contains(out, fill) {
			t.Errorf("missing node fill %s", fill)
		}
	}
	if n := strings.Count(out, `marker-end="url(#arrow)"`); n != 1 {
		t.Errorf("arrow paths = %d, want 1", n)
	}
	if !strings.Contains(out, `class="edge-label">reads</text>`) {
		t.Error("missing edge label text")
	}
	if !strings.Contains(out, `width="650" height="`) {
		t.Errorf("svg not sized to extent plus margins: %s", out[:200])
	}
	if !strings.Contains(out, `<g transform="translate(25,25)">`) {
		t.Error("missing margin group")
	}
	if !strings.Contains(out, `<marker id="arrow" viewBox="0 0 10 10" refX="8" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#6b7280"/>`) {
		t.Error("missing arrow marker")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := &diagram.Document{
		Elements: []diagram.Element{
			{ID: "a", Group: "Core", ContentList: []diagram.Section{{Label: "s", Values: []diagram.ListItem{
				{Label: "x", Modal: &diagram.Modal{Title: "m"}},
			}}}},
			{ID: "b", Group: "Core"},
		},
		Relations: []diagram.Relation{{From: "a", To: "b", Title: "calls"}},
	}
	g1, reg1 := assemble(t, doc, theme.Dark)
	g2, reg2 := assemble(t, doc, theme.Dark)
	a := New(WithPalette(theme.Resolve(theme.Dark)), WithOverlays(reg1)).Render(g1)
	b := New(WithPalette(theme.Resolve(theme.Dark)), WithOverlays(reg2)).Render(g2)
	if !bytes.Equal(a, b) {
		t.Error("identical inputs rendered differently")
	}
	wellFormed(t, a)
}

func TestRenderOrder(t *testing.T) {
	doc := &diagram.Document{
		Elements: []diagram.Element{
			{ID: "a", Group: "Data"},
			{ID: "b", Group: "Data"},
		},
		Relations: []diagram.Relation{{From: "a", To: "b"}},
	}
	g, reg := assemble(t, doc, theme.Light)
	out := string(New(WithOverlays(reg)).Render(g))

	clusterBox := strings.Index(out, `stroke-width="1.5"/>`)
	edge := strings.Index(out, "marker-end=")
	node := strings.Index(out, "data-element-id=")
	header := strings.Index(out, `class="cluster-label"`)
	layer := strings.Index(out, `<foreignObject x="0" y="0" width="100%" height="100%" style="pointer-events:none;">`)
	if !(clusterBox < edge && edge < node && node < header && header < layer) {
		t.Errorf("order: cluster=%d edge=%d node=%d header=%d overlays=%d", clusterBox, edge, node, header, layer)
	}
	if !strings.Contains(out, icons.Sized(icons.Get(icons.Database), graph.HeaderIconSize)) {
		t.Error("cluster header should carry the data icon")
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	out := string(New().Render(graph.New()))
	if !strings.Contains(out, `width="1200" height="800"`) {
		t.Errorf("empty graph canvas: %s", out[:120])
	}
}

func TestRenderEdgeStyles(t *testing.T) {
	tests := []struct {
		style string
		color string
		want  string
		not   string
	}{
		{"dashed", "", `stroke-dasharray="5, 5"`, ""},
		{"dotted", "", `stroke-dasharray="2, 3"`, ""},
		{"solid", "", `stroke="#e5e7eb"`, "stroke-dasharray"},
		{"", "#ff0000", `stroke="#ff0000"`, "stroke-dasharray"},
	}
	for _, tt := range tests {
		t.Run(tt.style+tt.color, func(t *testing.T) {
			doc := &diagram.Document{
				Elements:  []diagram.Element{{ID: "a"}, {ID: "b"}},
				Relations: []diagram.Relation{{From: "a", To: "b", Style: tt.style, Color: tt.color}},
			}
			g, reg := assemble(t, doc, theme.Light)
			out := string(New(WithOverlays(reg)).Render(g))
			body := out[strings.Index(out, `<g transform="translate(25,25)">`):]
			path := body[strings.Index(body, "<path d="):]
			path = path[:strings.Index(path, "/>")]
			if !strings.Contains(path, tt.want) {
				t.Errorf("path %s missing %s", path, tt.want)
			}
			if tt.not != "" && strings.Contains(path, tt.not) {
				t.Errorf("path %s should not contain %s", path, tt.not)
			}
		})
	}
}

func TestUnknownShapeRendersAsRect(t *testing.T) {
	render := func(spec *shape.Spec) string {
		doc := &diagram.Document{Elements: []diagram.Element{{ID: "a", Type: "system", Shape: spec}}}
		g, reg := assemble(t, doc, theme.Light)
		return string(New(WithOverlays(reg)).Render(g))
	}
	if render(&shape.Spec{Type: "blob"}) != render(&shape.Spec{Type: "rect"}) {
		t.Error("unknown shape differs from rect")
	}
	if !strings.Contains(render(&shape.Spec{Type: "diamond"}), "<polygon") {
		t.Error("diamond should render a polygon")
	}
}

func TestRenderLiveReload(t *testing.T) {
	g := graph.New()
	if strings.Contains(string(New().Render(g)), "EventSource") {
		t.Error("live reload client embedded without option")
	}
	if !strings.Contains(string(New(WithLiveReload()).Render(g)), "EventSource") {
		t.Error("live reload client missing")
	}
}

func TestRenderOverlayLayer(t *testing.T) {
	doc := &diagram.Document{Elements: []diagram.Element{{ID: "svc", ContentList: []diagram.Section{
		{Label: "Ops", Values: []diagram.ListItem{{Label: "runbook", Modal: &diagram.Modal{Title: "Runbook", On: "hover"}}}},
	}}}}
	g, reg := assemble(t, doc, theme.Light)
	out := string(New(WithOverlays(reg)).Render(g))
	if !strings.Contains(out, `id="modal-svc-0-0" class="modal" data-trigger="hover"`) {
		t.Error("registered modal missing from overlay layer")
	}
	wellFormed(t, []byte(out))
}

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		pts  []graph.Point
		want string
	}{
		{"too short", []graph.Point{{X: 1, Y: 1}}, ""},
		{"line", []graph.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, "M 0 0 L 10 10"},
		{"bezier", []graph.Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}, "M 0 0 C 1 2, 3 4, 5 6"},
		{"bezier and tip", []graph.Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 5, Y: 9.5}}, "M 0 0 C 1 2, 3 4, 5 6 L 5 9.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathData(tt.pts); got != tt.want {
				t.Errorf("PathData() = %q, want %q", got, tt.want)
			}
		})
	}
}
