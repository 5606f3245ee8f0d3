// Package shape builds the SVG outline drawn beneath a node's content.
//
// [Build] is a pure function of the spec, the box size and two colors. All
// polygon coordinates are rounded to three decimals so output is stable
// across platforms.
package shape

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape types.
const (
	Rect           = "rect"
	Rounded        = "rounded"
	RoundedRect    = "rounded-rect"
	Diamond        = "diamond"
	Hexagon        = "hexagon"
	Triangle       = "triangle"
	Parallelogram  = "parallelogram"
	ArrowRight     = "arrow-right"
	ArrowLeft      = "arrow-left"
	ArrowUp        = "arrow-up"
	ArrowDown      = "arrow-down"
	RegularPolygon = "regular-polygon"
	CustomPolygon  = "custom-polygon"
)

const (
	defaultSkew  = 0.15
	defaultHead  = 0.35
	defaultSides = 5
	strokeWidth  = "1.5"
)

// Spec describes a node outline. Pointer fields distinguish "unset" from an
// explicit zero.
type Spec struct {
	Type        string      `yaml:"type" json:"type"`
	Radius      *float64    `yaml:"radius,omitempty" json:"radius,omitempty"`
	Rotation    float64     `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Orientation string      `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Skew        *float64    `yaml:"skew,omitempty" json:"skew,omitempty"`
	Head        *float64    `yaml:"head,omitempty" json:"head,omitempty"`
	Sides       int         `yaml:"sides,omitempty" json:"sides,omitempty"`
	Points      [][]float64 `yaml:"points,omitempty" json:"points,omitempty"`
}

// Point is an outline vertex.
type Point struct{ X, Y float64 }

// Build returns the outline markup for spec inside a width×height box.
// A nil spec or an unknown type renders a rectangle with defaultRadius.
func Build(spec *Spec, width, height float64, fill, stroke string, defaultRadius float64) string {
	if spec == nil {
		return rect(width, height, defaultRadius, fill, stroke)
	}

	switch strings.ToLower(strings.TrimSpace(spec.Type)) {
	case Rect, Rounded, RoundedRect:
		r := defaultRadius
		if spec.Radius != nil {
			r = *spec.Radius
		}
		return rect(width, height, r, fill, stroke)
	case Diamond:
		return polygon(DiamondPoints(width, height), fill, stroke)
	case Hexagon:
		return polygon(RegularPolygonPoints(width, height, 6, spec.Rotation), fill, stroke)
	case Triangle:
		return polygon(TrianglePoints(width, height, spec.Orientation), fill, stroke)
	case Parallelogram:
		return polygon(ParallelogramPoints(width, height, valueOr(spec.Skew, defaultSkew)), fill, stroke)
	case ArrowRight, ArrowLeft, ArrowUp, ArrowDown:
		dir := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(spec.Type)), "arrow-")
		return polygon(ArrowPoints(width, height, dir, valueOr(spec.Head, defaultHead)), fill, stroke)
	case RegularPolygon:
		sides := spec.Sides
		if sides == 0 {
			sides = defaultSides
		}
		return polygon(RegularPolygonPoints(width, height, max(3, sides), spec.Rotation), fill, stroke)
	case CustomPolygon:
		pts, ok := CustomPolygonPoints(width, height, spec.Points, spec.Rotation)
		if !ok {
			return rect(width, height, defaultRadius, fill, stroke)
		}
		return polygon(pts, fill, stroke)
	default:
		return rect(width, height, defaultRadius, fill, stroke)
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// DiamondPoints returns the four edge midpoints of the box.
func DiamondPoints(w, h float64) []Point {
	cx, cy := w/2, h/2
	return []Point{{cx, 0}, {w, cy}, {cx, h}, {0, cy}}
}

// TrianglePoints returns a triangle pointing up, down, left or right.
// Unknown orientations point up.
func TrianglePoints(w, h float64, orientation string) []Point {
	switch strings.ToLower(orientation) {
	case "down":
		return []Point{{0, 0}, {w, 0}, {w / 2, h}}
	case "left":
		return []Point{{0, h / 2}, {w, 0}, {w, h}}
	case "right":
		return []Point{{0, 0}, {w, h / 2}, {0, h}}
	default:
		return []Point{{w / 2, 0}, {w, h}, {0, h}}
	}
}

// ParallelogramPoints slants the top edge right by skew×w, skew clamped to
// [0, 0.4].
func ParallelogramPoints(w, h, skew float64) []Point {
	dx := clamp(skew, 0, 0.4) * w
	return []Point{{dx, 0}, {w, 0}, {w - dx, h}, {0, h}}
}

// ArrowPoints returns a block arrow. The head fraction is clamped to
// [0.2, 0.8] of the width (left/right) or the height (up/down).
func ArrowPoints(w, h float64, dir string, headFrac float64) []Point {
	f := clamp(headFrac, 0.2, 0.8)
	switch dir {
	case "left":
		head := f * w
		return []Point{{w, 0}, {head, 0}, {0, h / 2}, {head, h}, {w, h}}
	case "up":
		head := f * h
		return []Point{{0, h}, {0, head}, {w / 2, 0}, {w, head}, {w, h}}
	case "down":
		body := h - f*h
		return []Point{{0, 0}, {0, body}, {w / 2, h}, {w, body}, {w, 0}}
	default:
		body := w - f*w
		return []Point{{0, 0}, {body, 0}, {w, h / 2}, {body, h}, {0, h}}
	}
}

// RegularPolygonPoints places sides vertices on the circle inscribed in the
// box, starting at rotationDeg degrees.
func RegularPolygonPoints(w, h float64, sides int, rotationDeg float64) []Point {
	cx, cy := w/2, h/2
	r := math.Min(w, h) / 2
	rot := rotationDeg * math.Pi / 180
	pts := make([]Point, sides)
	for i := range pts {
		a := rot + float64(i)*2*math.Pi/float64(sides)
		pts[i] = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

// CustomPolygonPoints scales normalized 0..1 points into the box and rotates
// them about its center. It reports false when fewer than three usable points
// are given.
func CustomPolygonPoints(w, h float64, raw [][]float64, rotationDeg float64) ([]Point, bool) {
	pts := make([]Point, 0, len(raw))
	for _, p := range raw {
		if len(p) < 2 {
			continue
		}
		pts = append(pts, Point{p[0] * w, p[1] * h})
	}
	if len(pts) < 3 {
		return nil, false
	}
	if rotationDeg != 0 {
		pts = rotate(pts, rotationDeg, w/2, h/2)
	}
	return pts, true
}

func rotate(pts []Point, deg, cx, cy float64) []Point {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	out := make([]Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-cx, p.Y-cy
		out[i] = Point{cx + dx*cos - dy*sin, cy + dx*sin + dy*cos}
	}
	return out
}

func rect(w, h, r float64, fill, stroke string) string {
	return fmt.Sprintf(`<rect width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
		Num(w), Num(h), Num(r), Num(r), fill, stroke, strokeWidth)
}

func polygon(pts []Point, fill, stroke string) string {
	return fmt.Sprintf(`<polygon points="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
		PointsString(pts), fill, stroke, strokeWidth)
}

// PointsString formats points as an SVG points list with three decimals.
func PointsString(pts []Point) string {
	var buf bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(Num(Round3(p.X)))
		buf.WriteByte(',')
		buf.WriteString(Num(Round3(p.Y)))
	}
	return buf.String()
}

// Round3 rounds v to three decimals.
func Round3(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Num formats v in the shortest form that round-trips ("400", "12.5").
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
