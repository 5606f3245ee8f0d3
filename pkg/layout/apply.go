package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/archview/pkg/graph"
)

// Apply writes the geometry of a positioned DOT graph back into g.
//
// Graphviz reports points with the origin at the bottom-left of the bounding
// box; Apply translates them so the origin is the top-left and y grows
// downward. Element nodes keep the size they were laid out with, since
// Graphviz only rounds it, unless they had none. Clusters receive their full
// box and the extent of g is set to the size of the bounding box.
func Apply(g *graph.Graph, pos *Positioned) error {
	bb, err := parseBox(pos.Graph["bb"])
	if err != nil {
		return fmt.Errorf("graph bb: %w", err)
	}
	flip := func(p graph.Point) graph.Point {
		return graph.Point{X: p.X - bb.llx, Y: bb.ury - p.Y}
	}
	g.Width = bb.urx - bb.llx
	g.Height = bb.ury - bb.lly

	m := newIDs(g)
	for _, n := range g.Nodes() {
		id := m.nodes[n.ID]
		if n.IsCluster() {
			attrs, ok := pos.Clusters[id]
			if !ok {
				return fmt.Errorf("cluster %q missing from layout", n.ID)
			}
			box, err := parseBox(attrs["bb"])
			if err != nil {
				return fmt.Errorf("cluster %q bb: %w", n.ID, err)
			}
			tl := flip(graph.Point{X: box.llx, Y: box.ury})
			n.Width, n.Height = box.urx-box.llx, box.ury-box.lly
			n.X, n.Y = tl.X+n.Width/2, tl.Y+n.Height/2
			continue
		}

		attrs, ok := pos.Nodes[id]
		if !ok {
			return fmt.Errorf("node %q missing from layout", n.ID)
		}
		p, err := parsePoint(attrs["pos"])
		if err != nil {
			return fmt.Errorf("node %q pos: %w", n.ID, err)
		}
		c := flip(p)
		n.X, n.Y = c.X, c.Y
		if n.Width == 0 || n.Height == 0 {
			n.Width, _ = parseInches(attrs["width"])
			n.Height, _ = parseInches(attrs["height"])
		}
	}

	for _, stmt := range pos.Edges {
		e, ok := m.edges[stmt.Attrs["id"]]
		if !ok {
			continue
		}
		spline, err := parseSpline(stmt.Attrs["pos"])
		if err != nil {
			return fmt.Errorf("edge %s -> %s pos: %w", e.From, e.To, err)
		}
		e.Points = e.Points[:0]
		for _, p := range spline.points {
			e.Points = append(e.Points, flip(p))
		}
		if spline.end != nil {
			e.Points = append(e.Points, flip(*spline.end))
		}
		if e.HasLabel {
			if lp, err := parsePoint(stmt.Attrs["lp"]); err == nil {
				l := flip(lp)
				e.LabelX, e.LabelY = l.X, l.Y
			} else {
				e.LabelX, e.LabelY = midpoint(e.Points)
			}
		}
	}
	return nil
}

type box struct{ llx, lly, urx, ury float64 }

func parseBox(s string) (box, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return box{}, err
	}
	return box{v[0], v[1], v[2], v[3]}, nil
}

func parsePoint(s string) (graph.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return graph.Point{}, err
	}
	return graph.Point{X: v[0], Y: v[1]}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) < n {
		return nil, fmt.Errorf("expected %d numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseInches(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v * pointsPerInch, nil
}

type spline struct {
	start  *graph.Point
	end    *graph.Point
	points []graph.Point
}

// parseSpline reads an edge pos attribute: optional "s,x,y" and "e,x,y"
// endpoints followed by the B-spline control points. Only the first spline
// of a multi-spline value is used.
func parseSpline(s string) (spline, error) {
	var sp spline
	s = strings.TrimSpace(s)
	if s == "" {
		return sp, fmt.Errorf("empty spline")
	}
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	for _, f := range strings.Fields(s) {
		switch {
		case strings.HasPrefix(f, "e,"):
			p, err := parsePoint(f[2:])
			if err != nil {
				return sp, err
			}
			sp.end = &p
		case strings.HasPrefix(f, "s,"):
			p, err := parsePoint(f[2:])
			if err != nil {
				return sp, err
			}
			sp.start = &p
		default:
			p, err := parsePoint(f)
			if err != nil {
				return sp, err
			}
			sp.points = append(sp.points, p)
		}
	}
	if len(sp.points) == 0 {
		return sp, fmt.Errorf("spline without points")
	}
	return sp, nil
}

func midpoint(pts []graph.Point) (x, y float64) {
	if len(pts) == 0 {
		return 0, 0
	}
	p := pts[len(pts)/2]
	return p.X, p.Y
}
