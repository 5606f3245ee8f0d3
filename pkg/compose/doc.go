// Package compose turns declarative element and relation content into SVG
// markup with explicit pixel dimensions.
//
// [NodeCompositor] handles element bodies (lists, raw HTML, tables and the
// placeholder) and registers every list-item modal with the pass's
// [overlay.Registry]. [EdgeCompositor] handles relation labels and decides
// how much space a label needs before layout runs.
//
// Composed markup is in box-local coordinates: (0,0) is the top-left corner
// of the node or label box. Callers translate it into place.
package compose
