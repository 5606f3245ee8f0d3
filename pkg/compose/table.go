package compose

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

// Table metrics, in pixels.
const (
	TablePadding   = 10
	TableCellPad   = 8
	TableTitleBand = 40
	TableRowHeight = 28
	TableHeadRow   = 30
)

// TableGeometry is the sizing decision for a tabular element.
type TableGeometry struct {
	Columns     int
	ColumnWidth float64
	VisibleRows int
	HiddenRows  int
}

// LayoutTable computes column widths and how many rows fit in a w×h box.
// Rows that do not fit are counted in HiddenRows.
func LayoutTable(e *diagram.Element, w, h float64) TableGeometry {
	cols := len(e.Columns)
	if len(e.Rows) > 0 {
		cols = max(cols, len(e.Rows[0]))
	}
	cols = max(1, cols)

	inner := h - 2*TablePadding
	if e.Title != "" {
		inner -= TableTitleBand
	}
	capacity := max(0, int(math.Floor((inner-TableHeadRow)/TableRowHeight)))
	visible := min(capacity, len(e.Rows))

	return TableGeometry{
		Columns:     cols,
		ColumnWidth: math.Floor((w - 2*TablePadding) / float64(cols)),
		VisibleRows: visible,
		HiddenRows:  len(e.Rows) - visible,
	}
}

func (c *NodeCompositor) table(e *diagram.Element, w, h float64) string {
	g := LayoutTable(e, w, h)
	bg := c.palette.Get(theme.KeyTableau)
	border := c.palette.Get(theme.KeyBorder)
	text := c.palette.Get(theme.KeyText)
	faded := c.palette.Get(theme.KeyTextFaded)
	colW := px(num(g.ColumnWidth))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<foreignObject width="%s" height="%s"><div xmlns="%s" style="font-family:%s;color:%s;height:100%%;width:100%%;box-sizing:border-box;display:flex;flex-direction:column;background:%s;">`,
		num(w), num(h), xhtmlNS, c.cfg.FontFamily, text, bg)

	if e.Title != "" {
		pad := px(num(c.cfg.Padding))
		fmt.Fprintf(&buf, `<div style="flex-shrink:0;padding:%s %s 8px %s;background-color:%s;border-bottom:1px solid %s;"><h2 style="margin:0;font-size:18px;color:%s;text-align:center;">%s</h2>`,
			pad, pad, pad, bg, border, text, overlay.EscapeXML(e.Title))
		if e.Subtitle != "" {
			fmt.Fprintf(&buf, `<p style="margin:4px 0 0 0;font-size:13px;color:%s;text-align:center;">%s</p>`, faded, overlay.EscapeXML(e.Subtitle))
		}
		buf.WriteString(`</div>`)
	}

	fmt.Fprintf(&buf, `<div style="flex-grow:1;overflow:auto;padding:%dpx;"><div style="border:1px solid %s;border-radius:6px;overflow:hidden;">`, TablePadding, border)

	fmt.Fprintf(&buf, `<div class="table-head" style="display:flex;background:%s;border-bottom:1px solid %s;">`, c.palette.Get(theme.KeyBackground), border)
	for col := 0; col < g.Columns; col++ {
		label := fmt.Sprintf("Col %d", col+1)
		if col < len(e.Columns) {
			label = string(e.Columns[col])
		}
		fmt.Fprintf(&buf, `<div style="width:%s;box-sizing:border-box;padding:%dpx;font-weight:600;color:%s;border-right:%s;">%s</div>`,
			colW, TableCellPad, text, cellBorder(col, g.Columns, border), overlay.EscapeXML(label))
	}
	buf.WriteString(`</div>`)

	for r := 0; r < g.VisibleRows; r++ {
		rowBg := "transparent"
		if r%2 == 1 {
			rowBg = c.palette.Get(theme.KeyClusterBg)
		}
		bottom := "none"
		if r < g.VisibleRows-1 {
			bottom = "1px solid " + border
		}
		fmt.Fprintf(&buf, `<div class="table-row" style="display:flex;background:%s;border-bottom:%s;">`, rowBg, bottom)
		row := e.Rows[r]
		for col := 0; col < g.Columns; col++ {
			var value string
			if col < len(row) {
				value = string(row[col])
			}
			fmt.Fprintf(&buf, `<div style="width:%s;box-sizing:border-box;padding:%dpx;color:%s;border-right:%s;white-space:nowrap;overflow:hidden;text-overflow:ellipsis;">%s</div>`,
				colW, TableCellPad, text, cellBorder(col, g.Columns, border), overlay.EscapeXML(value))
		}
		buf.WriteString(`</div>`)
	}

	if g.HiddenRows > 0 {
		fmt.Fprintf(&buf, `<div class="table-more" style="padding:%dpx;color:%s;font-size:12px;border-top:1px dashed %s;text-align:right;">+%d more…</div>`,
			TableCellPad, faded, border, g.HiddenRows)
	}

	buf.WriteString(`</div></div></div></foreignObject>`)
	return buf.String()
}

func cellBorder(col, cols int, border string) string {
	if col < cols-1 {
		return "1px solid " + border
	}
	return "none"
}
