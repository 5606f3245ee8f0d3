package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/icons"
	"github.com/matzehuels/archview/pkg/shape"
)

// Validate checks the structural invariants a render pass relies on:
// element ids are valid and unique, no id doubles as a group name, relation
// endpoints resolve, and list item URLs use safe schemes.
func (d *Document) Validate() error {
	ids := make(map[string]int, len(d.Elements))
	for i, e := range d.Elements {
		if err := errors.ValidateElementID(e.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "element %d", i)
		}
		if prev, dup := ids[e.ID]; dup {
			return errors.New(errors.ErrCodeInvalidDocument, "element %d: duplicate id %q (first used by element %d)", i, e.ID, prev)
		}
		ids[e.ID] = i
	}

	for _, g := range d.Groups() {
		if _, clash := ids[g]; clash {
			return errors.New(errors.ErrCodeInvalidDocument, "group %q has the same name as an element id", g)
		}
	}

	for i, e := range d.Elements {
		for s, sec := range e.ContentList {
			for v, item := range sec.Values {
				if item.URL == "" {
					continue
				}
				if err := errors.ValidateLinkURL(item.URL); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidDocument, err, "element %q section %d item %d", e.ID, s, v)
				}
			}
		}
		if e.Width < 0 || e.Height < 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "element %d (%q): negative size", i, e.ID)
		}
	}

	for i, r := range d.Relations {
		if _, ok := ids[r.From]; !ok {
			return errors.New(errors.ErrCodeInvalidReference, "relation %d: unknown source element %q", i, r.From)
		}
		if _, ok := ids[r.To]; !ok {
			return errors.New(errors.ErrCodeInvalidReference, "relation %d: unknown target element %q", i, r.To)
		}
		if r.Width < 0 || r.Height < 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "relation %d: negative label size", i)
		}
	}
	return nil
}

var knownShapes = map[string]bool{
	shape.Rect: true, shape.Rounded: true, shape.RoundedRect: true, shape.Diamond: true,
	shape.Hexagon: true, shape.Triangle: true, shape.Parallelogram: true,
	shape.ArrowRight: true, shape.ArrowLeft: true, shape.ArrowUp: true, shape.ArrowDown: true,
	shape.RegularPolygon: true, shape.CustomPolygon: true,
}

// Lint returns non-fatal findings: content that renders as a fallback or is
// silently skipped.
func (d *Document) Lint() []string {
	var out []string
	for _, e := range d.Elements {
		if e.Shape != nil && !knownShapes[strings.ToLower(strings.TrimSpace(e.Shape.Type))] {
			out = append(out, fmt.Sprintf("element %q: unknown shape %q renders as rect", e.ID, e.Shape.Type))
		}
		if e.Mode() == ModeFallback {
			out = append(out, fmt.Sprintf("element %q: no content, renders a placeholder", e.ID))
		}
		for s, sec := range e.ContentList {
			if !sec.Renderable() {
				out = append(out, fmt.Sprintf("element %q: section %d needs a label and values", e.ID, s))
			}
			if sec.Symbol != "" && icons.Get(sec.Symbol) == "" {
				out = append(out, fmt.Sprintf("element %q: section %d: unknown symbol %q", e.ID, s, sec.Symbol))
			}
			for v, item := range sec.Values {
				if item.Symbol != "" && icons.Get(item.Symbol) == "" {
					out = append(out, fmt.Sprintf("element %q: section %d item %d: unknown symbol %q", e.ID, s, v, item.Symbol))
				}
				if item.Modal != nil && item.Modal.On != "" && item.Modal.On != "hover" && item.Modal.On != "click" {
					out = append(out, fmt.Sprintf("element %q: section %d item %d: modal trigger %q treated as click", e.ID, s, v, item.Modal.On))
				}
			}
		}
	}
	for i, r := range d.Relations {
		switch r.Style {
		case "", "solid", "dashed", "dotted":
		default:
			out = append(out, fmt.Sprintf("relation %d: unknown style %q renders solid", i, r.Style))
		}
	}
	return out
}
