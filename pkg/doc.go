// Package pkg provides the libraries behind archview, which renders
// architecture documents as interactive SVG diagrams.
//
// # Overview
//
// A document lists elements (boxes with optional lists, tables or HTML
// content), the groups they belong to and the relations between them. The
// pkg directory is organized by pipeline stage:
//
//  1. [diagram] - Document model, YAML/JSON decoding and validation
//  2. [compose] - Node and edge label content, sized for the layout
//  3. [graph] - The layout graph: clusters, element nodes, labelled edges
//  4. [layout] - Graphviz dot invocation and geometry read-back
//  5. [render] - One self-contained SVG from a positioned graph
//
// # Architecture
//
// The data flow of one render pass:
//
//	YAML / JSON source
//	         ↓
//	    [diagram] package (decode + validate)
//	         ↓
//	    [compose] + [graph] packages (content sizing, clusters, edges)
//	         ↓
//	    [layout] package (dot positions nodes, clusters and splines)
//	         ↓
//	    [render] package (shapes, overlays, live reload client)
//	         ↓
//	    SVG artifact
//
// # Quick Start
//
//	doc, _ := diagram.ReadFile("architecture.yaml")
//	svg, _ := pipeline.Generate(ctx, doc, pipeline.Options{
//	    Palette: "dark",
//	    RankDir: "LR",
//	})
//
// # Main Packages
//
// ## Rendering
//
// [theme] - Light and dark palettes, typography and layout defaults, and
// palette overrides from configuration.
//
// [shape] - Outline synthesis for rect, diamond, hexagon, arrows, polygons.
//
// [icons] - Inline SVG icon set and the keyword matcher used for element
// types and cluster titles.
//
// [fonts] - Text measurement with the Go fonts.
//
// [overlay] - Hover and click modals collected during composition, plus the
// fixed client script that drives them.
//
// [pipeline] - [pipeline.Generate] runs a whole pass; [pipeline.Runner] adds
// an artifact cache.
//
// ## Serving
//
// [live] - Watches the source, regenerates with a debounce and fans reload
// notifications out to subscribers.
//
// [server] - HTTP surface: current artifact, server-sent events, ad-hoc
// generation and the current document.
//
// ## Infrastructure
//
// [cache] - Artifact caches: null, memory, file and Redis.
//
// [config] - TOML configuration for serve, render and the cache.
//
// [errors] - Coded errors mapped to HTTP statuses.
//
// [observability] - Hooks around pipeline stages, the cache and the live
// controller.
//
// [buildinfo] - Version information injected at build time.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/diagram
// [compose]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/compose
// [graph]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/render
// [theme]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/theme
// [shape]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/shape
// [icons]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/icons
// [fonts]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/fonts
// [overlay]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/overlay
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/pipeline
// [live]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/live
// [server]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/archview/pkg/buildinfo
package pkg
