// Package overlay collects the hover/click modals registered while node
// content is composed and emits them once per render pass.
//
// Interactive list items carry declarative attributes only:
//
//	data-item          marks an interactive item
//	data-url           opens in a new tab on click (wins over a click modal)
//	data-modal         DOM id of the item's modal
//	data-modal-on      "hover" or "click"
//
// A single fixed script ([Script]) interprets them through event delegation
// on the document, so no per-item script text is generated.
package overlay

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/archview/pkg/theme"
)

// Trigger selects the pointer interaction that opens a modal.
type Trigger string

const (
	TriggerHover Trigger = "hover"
	TriggerClick Trigger = "click"
)

// ParseTrigger maps a document value onto a Trigger. Anything other than
// "hover" is a click trigger.
func ParseTrigger(s string) Trigger {
	if s == string(TriggerHover) {
		return TriggerHover
	}
	return TriggerClick
}

// Descriptor is one registered modal.
type Descriptor struct {
	Title       string
	Subtitle    string
	HTMLContent string // embedded verbatim
	Trigger     Trigger
}

// Registry accumulates descriptors in registration order. A Registry belongs
// to a single render pass and is not safe for concurrent use.
type Registry struct {
	palette *theme.Palette
	order   []string
	items   map[string]Descriptor
}

// NewRegistry creates an empty registry styled with p.
func NewRegistry(p *theme.Palette) *Registry {
	return &Registry{palette: p, items: make(map[string]Descriptor)}
}

// Key builds the registry key of the modal attached to a list item.
func Key(elementID string, section, value int) string {
	return elementID + "-" + strconv.Itoa(section) + "-" + strconv.Itoa(value)
}

// DOMID returns the element id used for the modal registered under key.
func DOMID(key string) string {
	return "modal-" + key
}

// Register stores d under key and returns its DOM id. Registering an existing
// key replaces the descriptor but keeps its original position.
func (r *Registry) Register(key string, d Descriptor) string {
	if _, ok := r.items[key]; !ok {
		r.order = append(r.order, key)
	}
	r.items[key] = d
	return DOMID(key)
}

// Len returns the number of registered modals.
func (r *Registry) Len() int { return len(r.order) }

// Lookup returns the descriptor registered under key.
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	d, ok := r.items[key]
	return d, ok
}

// DOMIDs returns the DOM ids of all modals in registration order.
func (r *Registry) DOMIDs() []string {
	ids := make([]string, len(r.order))
	for i, k := range r.order {
		ids[i] = DOMID(k)
	}
	return ids
}

// Markup returns the XHTML for every registered modal, wrapped in a single
// root element suitable for a foreignObject.
func (r *Registry) Markup() string {
	var buf bytes.Buffer
	buf.WriteString(`<div xmlns="http://www.w3.org/1999/xhtml">`)
	for _, key := range r.order {
		d := r.items[key]
		fmt.Fprintf(&buf, `<div id="%s" class="modal" data-trigger="%s"><div class="modal-header"><h4>%s</h4>`,
			EscapeXML(DOMID(key)), d.Trigger, EscapeXML(d.Title))
		if d.Subtitle != "" {
			fmt.Fprintf(&buf, `<p>%s</p>`, EscapeXML(d.Subtitle))
		}
		fmt.Fprintf(&buf, `</div><div class="modal-content">%s</div></div>`, d.HTMLContent)
	}
	buf.WriteString(`</div>`)
	return buf.String()
}

// CSS returns the modal and interactive-item styles for the registry's palette.
func (r *Registry) CSS() string {
	p := r.palette
	return fmt.Sprintf(`.modal{position:fixed;visibility:hidden;opacity:0;transition:opacity .2s ease-in-out,visibility .2s;background-color:%s;border:1px solid %s;border-radius:8px;box-shadow:0 4px 12px %s;padding:16px;z-index:100;max-width:350px;pointer-events:none}`+
		`.modal.visible{visibility:visible;opacity:1;pointer-events:auto}`+
		`.modal-header h4{margin:0 0 5px 0;font-size:16px;color:%s}`+
		`.modal-header p{margin:0 0 10px 0;font-size:12px;color:%s}`+
		`.modal-content{font-size:14px;color:%s}`+
		`li.item{transition:background-color .2s}li.item:hover{background-color:%s}`+
		`[data-url],[data-modal-on="click"]{cursor:pointer}`,
		p.Get(theme.KeyModalBg), p.Get(theme.KeyBorder), p.Get(theme.KeyModalShadow),
		p.Get(theme.KeyText), p.Get(theme.KeyTextFaded), p.Get(theme.KeyText),
		p.Get(theme.KeyHover))
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
