// Package render draws a laid-out [graph.Graph] as a self-contained SVG
// document.
//
// # Overview
//
// The renderer performs no layout and no content composition. Node bodies
// and edge labels arrive as markup on the graph; the renderer places them,
// draws shape outlines, cluster boxes and routed edges around them, and
// embeds the styles, the overlay script and the registered overlays.
//
//	r := render.New(
//	    render.WithPalette(theme.Resolve("dark")),
//	    render.WithOverlays(registry),
//	)
//	svg := r.Render(g)
//
// # Document Order
//
// Cluster backgrounds are drawn first, then edges with their labels, then
// element nodes, then cluster headers, so headers mask edges that pass
// beneath them. The overlay layer comes last and covers the whole drawing
// without intercepting pointer events.
//
// # Margins
//
// The drawing is offset by [Margin] on every side. A graph with an empty
// extent is drawn on a 1200×800 canvas.
package render
