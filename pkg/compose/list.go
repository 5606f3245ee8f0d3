package compose

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/icons"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

func (c *NodeCompositor) list(e *diagram.Element, w, h float64) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<foreignObject width="%s" height="%s"><div xmlns="%s" style="font-family:%s;color:%s;height:100%%;width:100%%;box-sizing:border-box;display:flex;flex-direction:column;">`,
		num(w), num(h), xhtmlNS, c.cfg.FontFamily, c.palette.Get(theme.KeyText))
	c.header(&buf, e)

	pad := num(c.cfg.Padding)
	fmt.Fprintf(&buf, `<div style="flex-grow:1;overflow-y:auto;padding:10px %s %s %s;">`, px(pad), px(pad), px(pad))
	for s, sec := range e.ContentList {
		if sec.Renderable() {
			c.section(&buf, e.ID, s, sec)
		}
	}
	buf.WriteString(`</div></div></foreignObject>`)
	return buf.String()
}

func px(v string) string { return v + "px" }

// header writes the fixed title band. It is omitted when the element has
// neither title nor subtitle.
func (c *NodeCompositor) header(buf *bytes.Buffer, e *diagram.Element) {
	if e.Title == "" && e.Subtitle == "" {
		return
	}
	pad := px(num(c.cfg.Padding))
	fmt.Fprintf(buf, `<div style="flex-shrink:0;padding:%s %s 10px %s;background-color:%s;position:relative;z-index:1;">`,
		pad, pad, pad, c.palette.Category(e.Type))

	if e.Title != "" {
		margin := "0"
		if e.Subtitle != "" {
			margin = "5px"
		}
		fmt.Fprintf(buf, `<h2 style="display:flex;align-items:center;gap:8px;justify-content:center;margin:0 0 %s 0;font-size:20px;color:%s;">`,
			margin, c.palette.Get(theme.KeyText))
		if icon := icons.Get(icons.ForElement(e.Tags, e.Type)); icon != "" {
			fmt.Fprintf(buf, `<span style="display:inline-flex;align-items:center;">%s</span>`, icon)
		}
		fmt.Fprintf(buf, `<span>%s</span></h2>`, overlay.EscapeXML(e.Title))
	}
	if e.Subtitle != "" {
		fmt.Fprintf(buf, `<p style="text-align:center;margin:0;font-size:14px;color:%s;">%s</p>`,
			c.palette.Get(theme.KeyTextFaded), overlay.EscapeXML(e.Subtitle))
	}
	buf.WriteString(`</div>`)
}

func (c *NodeCompositor) section(buf *bytes.Buffer, elementID string, index int, sec diagram.Section) {
	fmt.Fprintf(buf, `<div style="margin-top:15px;"><h3 style="font-size:16px;margin:0 0 8px 0;padding-bottom:5px;border-bottom:1px solid %s;font-weight:600;text-align:left;display:flex;align-items:center;">`,
		c.palette.Get(theme.KeyBorder))
	if icon := icons.Get(sec.Symbol); icon != "" {
		fmt.Fprintf(buf, `<div style="margin-right:8px;">%s</div>`, icon)
	}
	fmt.Fprintf(buf, `<span>%s</span></h3><ul style="margin:0;padding:0;list-style:none;">`, overlay.EscapeXML(sec.Label))
	for v, item := range sec.Values {
		c.item(buf, elementID, index, v, item)
	}
	buf.WriteString(`</ul></div>`)
}

// item writes one list entry. Interactive entries carry data-* attributes for
// the overlay script; a URL takes precedence over a click modal there.
func (c *NodeCompositor) item(buf *bytes.Buffer, elementID string, section, value int, li diagram.ListItem) {
	buf.WriteString(`<li class="item" style="display:flex;align-items:flex-start;margin:2px -8px;padding:8px;border-radius:6px;"`)
	if li.Interactive() {
		buf.WriteString(` data-item=""`)
	}
	if li.URL != "" {
		fmt.Fprintf(buf, ` data-url="%s"`, overlay.EscapeXML(li.URL))
	}
	if li.Modal != nil {
		trigger := overlay.ParseTrigger(li.Modal.On)
		id := c.overlays.Register(overlay.Key(elementID, section, value), overlay.Descriptor{
			Title:       li.Modal.Title,
			Subtitle:    li.Modal.Subtitle,
			HTMLContent: li.Modal.HTMLContent,
			Trigger:     trigger,
		})
		fmt.Fprintf(buf, ` data-modal="%s" data-modal-on="%s"`, overlay.EscapeXML(id), trigger)
	}
	buf.WriteString(`>`)

	icon := icons.Get(li.Symbol)
	if icon != "" {
		fmt.Fprintf(buf, `<div style="flex-shrink:0;margin-top:3px;">%s</div>`, icon)
	}
	margin := "0"
	if icon != "" {
		margin = "8px"
	}
	fmt.Fprintf(buf, `<div style="margin-left:%s;"><span>%s`, margin, overlay.EscapeXML(li.Label))
	if li.URL != "" {
		fmt.Fprintf(buf, `<span style="margin-left:6px;opacity:0.6;">%s</span>`, icons.Get(icons.Link))
	}
	buf.WriteString(`</span>`)
	if li.Subtitle != "" {
		fmt.Fprintf(buf, `<p style="font-size:12px;color:%s;margin:2px 0 0 0;text-align:left;">%s</p>`,
			c.palette.Get(theme.KeyTextFaded), overlay.EscapeXML(li.Subtitle))
	}
	buf.WriteString(`</div></li>`)
}
