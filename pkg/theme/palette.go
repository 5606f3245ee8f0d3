package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Palette names.
const (
	Light = "light"
	Dark  = "dark"
)

// Semantic color keys.
const (
	KeyBackground  = "background"
	KeyText        = "text"
	KeyTextFaded   = "textFaded"
	KeyBorder      = "border"
	KeyArrow       = "arrow"
	KeyDefault     = "default"
	KeyPerson      = "person"
	KeySystem      = "system"
	KeyDatabase    = "database"
	KeyAPI         = "api"
	KeyTableau     = "tableau"
	KeyHover       = "hover"
	KeyClusterBg   = "clusterBg"
	KeyModalBg     = "modalBg"
	KeyModalShadow = "modalShadow"
)

// Keys lists every semantic key in a stable order.
var Keys = []string{
	KeyBackground, KeyText, KeyTextFaded, KeyBorder, KeyArrow, KeyDefault,
	KeyPerson, KeySystem, KeyDatabase, KeyAPI, KeyTableau,
	KeyHover, KeyClusterBg, KeyModalBg, KeyModalShadow,
}

var builtin = map[string]map[string]string{
	Light: {
		KeyBackground:  "#ffffff",
		KeyText:        "#111827",
		KeyTextFaded:   "#6b7280",
		KeyBorder:      "#e5e7eb",
		KeyArrow:       "#6b7280",
		KeyDefault:     "#ffffff",
		KeyPerson:      "#e0f2fe",
		KeySystem:      "#dcfce7",
		KeyDatabase:    "#fef9c3",
		KeyAPI:         "#fae8ff",
		KeyTableau:     "#f3f4f6",
		KeyHover:       "#eef2f7",
		KeyClusterBg:   "#f9fafb",
		KeyModalBg:     "#ffffff",
		KeyModalShadow: "rgba(0,0,0,0.10)",
	},
	Dark: {
		KeyBackground:  "#0d1117",
		KeyText:        "#e5e7eb",
		KeyTextFaded:   "#9ca3af",
		KeyBorder:      "#30363d",
		KeyArrow:       "#8b949e",
		KeyDefault:     "#161b22",
		KeyPerson:      "#0b2f53",
		KeySystem:      "#113227",
		KeyDatabase:    "#3b2f0b",
		KeyAPI:         "#2b213a",
		KeyTableau:     "#1f242d",
		KeyHover:       "#21262d",
		KeyClusterBg:   "#161b22",
		KeyModalBg:     "#161b22",
		KeyModalShadow: "rgba(0,0,0,0.45)",
	},
}

// Palette is an immutable mapping from semantic key to CSS color.
type Palette struct {
	name   string
	colors map[string]string
}

// Name returns the palette name ("light" or "dark").
func (p *Palette) Name() string { return p.name }

// Get returns the color for key, falling back to the "default" entry.
func (p *Palette) Get(key string) string {
	if c, ok := p.colors[key]; ok {
		return c
	}
	return p.colors[KeyDefault]
}

// Category resolves a node fill from an element type. Types without a
// palette entry use the "default" color.
func (p *Palette) Category(typ string) string {
	return p.Get(strings.TrimSpace(typ))
}

// Has reports whether key is defined by the palette.
func (p *Palette) Has(key string) bool {
	_, ok := p.colors[key]
	return ok
}

// Normalize maps a requested palette name onto a built-in one. Anything other
// than "dark" (case-insensitive) is light.
func Normalize(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), Dark) {
		return Dark
	}
	return Light
}

// IsKnown reports whether name is exactly a built-in palette name.
func IsKnown(name string) bool {
	_, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the built-in palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Registry resolves palette names. The zero value is not usable; use
// [NewRegistry] or the package-level [Resolve].
type Registry struct {
	palettes map[string]*Palette
}

// Overrides maps palette name to key/color replacements.
type Overrides map[string]map[string]string

// NewRegistry builds a registry from the built-in palettes with overrides
// applied. Overrides may only target built-in palettes and known keys.
func NewRegistry(overrides Overrides) (*Registry, error) {
	r := &Registry{palettes: make(map[string]*Palette, len(builtin))}
	for name, colors := range builtin {
		merged := make(map[string]string, len(colors))
		for k, v := range colors {
			merged[k] = v
		}
		r.palettes[name] = &Palette{name: name, colors: merged}
	}

	for name, colors := range overrides {
		p, ok := r.palettes[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("theme override: unknown palette %q (want one of %s)", name, strings.Join(Names(), ", "))
		}
		for k, v := range colors {
			if _, known := builtin[Light][k]; !known {
				return nil, fmt.Errorf("theme override: palette %q: unknown color key %q", name, k)
			}
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf("theme override: palette %q: empty color for %q", name, k)
			}
			p.colors[k] = v
		}
	}
	return r, nil
}

// Resolve returns the named palette; unknown or empty names return light.
func (r *Registry) Resolve(name string) *Palette {
	return r.palettes[Normalize(name)]
}

var defaultRegistry, _ = NewRegistry(nil)

// Default returns the registry holding the unmodified built-in palettes.
func Default() *Registry { return defaultRegistry }

// Resolve returns the named built-in palette; unknown or empty names return
// light.
func Resolve(name string) *Palette {
	return defaultRegistry.Resolve(name)
}
