// Package fonts provides text metrics for sizing boxes that hold text.
//
// Rendered diagrams use a browser font stack, so exact metrics are not
// available at render time. The Go fonts bundled with golang.org/x/image are
// a close stand-in for a sans-serif UI font and are parsed once on first use.
package fonts

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects the face used for measurement.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontFamily is the CSS stack the metrics approximate.
const FontFamily = "Inter, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif"

// fallbackCharWidth is the average advance, as a fraction of the font size,
// used when the embedded fonts cannot be parsed.
const fallbackCharWidth = 0.55

type faceKey struct {
	weight Weight
	size   float64
}

var (
	parsed     [2]*opentype.Font
	parseOnce  sync.Once
	facesMu    sync.Mutex
	facesCache = map[faceKey]font.Face{}
)

func loadFonts() {
	parseOnce.Do(func() {
		parsed[Regular], _ = opentype.Parse(goregular.TTF)
		parsed[Bold], _ = opentype.Parse(gobold.TTF)
	})
}

// face returns a cached face; callers must hold facesMu since faces are not
// safe for concurrent use.
func face(w Weight, size float64) font.Face {
	key := faceKey{w, size}
	if f, ok := facesCache[key]; ok {
		return f
	}
	if parsed[w] == nil {
		return nil
	}
	f, err := opentype.NewFace(parsed[w], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	facesCache[key] = f
	return f
}

// Width returns the advance width of s in pixels at the given size.
func Width(s string, size float64, w Weight) float64 {
	if s == "" {
		return 0
	}
	loadFonts()

	facesMu.Lock()
	defer facesMu.Unlock()
	f := face(w, size)
	if f == nil {
		return float64(len([]rune(s))) * size * fallbackCharWidth
	}
	return float64(font.MeasureString(f, s)) / 64
}

// CeilWidth is Width rounded up to a whole pixel.
func CeilWidth(s string, size float64, w Weight) float64 {
	return math.Ceil(Width(s, size, w))
}
