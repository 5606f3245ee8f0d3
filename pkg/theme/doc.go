// Package theme holds the color palettes and typography/layout defaults used
// by every rendering stage.
//
// Exactly two palettes are built in, "light" and "dark". Lookups never fail:
// an unknown palette name resolves to light and an unknown color key resolves
// to the palette's "default" entry.
//
//	p := theme.Resolve("dark")
//	fill := p.Category(element.Type) // "#161b22" for an unknown type
//
// A [Registry] can carry per-key overrides loaded from configuration. Both
// registries and palettes are immutable once built and safe to share between
// goroutines.
package theme
