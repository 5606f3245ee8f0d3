package diagram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archview/pkg/shape"
)

// TypeTable is the element type that forces tabular content.
const TypeTable = "tableau"

// Document is a complete diagram description.
type Document struct {
	Elements  []Element  `yaml:"elements" json:"elements"`
	Relations []Relation `yaml:"relations" json:"relations"`
}

// Element is a node of the diagram.
type Element struct {
	ID       string      `yaml:"id" json:"id"`
	Type     string      `yaml:"type,omitempty" json:"type,omitempty"`
	Title    string      `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string      `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Group    string      `yaml:"group,omitempty" json:"group,omitempty"`
	Width    float64     `yaml:"width,omitempty" json:"width,omitempty"`
	Height   float64     `yaml:"height,omitempty" json:"height,omitempty"`
	Shape    *shape.Spec `yaml:"shape,omitempty" json:"shape,omitempty"`
	Tags     []string    `yaml:"tags,omitempty" json:"tags,omitempty"`

	ContentList []Section `yaml:"content_list,omitempty" json:"content_list,omitempty"`
	HTMLContent string    `yaml:"html_content,omitempty" json:"html_content,omitempty"`
	Columns     []Cell    `yaml:"columns,omitempty" json:"columns,omitempty"`
	Rows        [][]Cell  `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// Section is a titled list inside a content_list element.
type Section struct {
	Label  string     `yaml:"label" json:"label"`
	Symbol string     `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Values []ListItem `yaml:"values" json:"values"`
}

// Renderable reports whether the section has a label and at least one value.
func (s Section) Renderable() bool {
	return s.Label != "" && len(s.Values) > 0
}

// ListItem is one entry of a section.
type ListItem struct {
	Label    string `yaml:"label" json:"label"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Symbol   string `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	URL      string `yaml:"url,omitempty" json:"url,omitempty"`
	Modal    *Modal `yaml:"modal,omitempty" json:"modal,omitempty"`
}

// Interactive reports whether the item reacts to the pointer.
func (li ListItem) Interactive() bool {
	return li.URL != "" || li.Modal != nil
}

// Modal is an overlay attached to a list item.
type Modal struct {
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	HTMLContent string `yaml:"html_content,omitempty" json:"html_content,omitempty"`
	On          string `yaml:"on,omitempty" json:"on,omitempty"`
}

// Relation is a directed edge between two elements.
type Relation struct {
	From        string      `yaml:"from" json:"from"`
	To          string      `yaml:"to" json:"to"`
	Title       string      `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    string      `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	ContentList []LabelItem `yaml:"content_list,omitempty" json:"content_list,omitempty"`
	HTMLLabel   string      `yaml:"html_label,omitempty" json:"html_label,omitempty"`
	Label       string      `yaml:"label,omitempty" json:"label,omitempty"`
	Style       string      `yaml:"style,omitempty" json:"style,omitempty"`
	Color       string      `yaml:"color,omitempty" json:"color,omitempty"`
	Width       float64     `yaml:"width,omitempty" json:"width,omitempty"`
	Height      float64     `yaml:"height,omitempty" json:"height,omitempty"`
}

// LabelItem is one line of a structured edge label.
type LabelItem struct {
	Symbol string `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Label  string `yaml:"label" json:"label"`
}

// Cell is a table header or cell. Any scalar decodes into its textual form.
type Cell string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*c = ""
	case string:
		*c = Cell(x)
	case float64:
		*c = Cell(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*c = Cell(strconv.FormatBool(x))
	default:
		return fmt.Errorf("table cell must be a scalar, got %s", strings.TrimSpace(string(b)))
	}
	return nil
}

// UnmarshalYAML accepts any scalar; null decodes to the empty cell.
func (c *Cell) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: table cell must be a scalar", n.Line)
	}
	if n.Tag == "!!null" {
		*c = ""
		return nil
	}
	*c = Cell(n.Value)
	return nil
}

// ContentMode identifies how an element's body is composed.
type ContentMode string

const (
	ModeList     ContentMode = "content_list"
	ModeHTML     ContentMode = "html_content"
	ModeTable    ContentMode = "table"
	ModeFallback ContentMode = "fallback"
)

// Mode returns the effective content mode by precedence:
// content_list, then html_content, then tabular, then the placeholder.
// Tabular mode applies when columns or rows are present or the type is
// "tableau".
func (e *Element) Mode() ContentMode {
	switch {
	case len(e.ContentList) > 0:
		return ModeList
	case e.HTMLContent != "":
		return ModeHTML
	case e.Type == TypeTable || len(e.Columns) > 0 || len(e.Rows) > 0:
		return ModeTable
	default:
		return ModeFallback
	}
}

// LabelMode identifies how a relation's label is composed.
type LabelMode string

const (
	LabelNone       LabelMode = ""
	LabelStructured LabelMode = "structured"
	LabelHTML       LabelMode = "html"
	LabelPlain      LabelMode = "plain"
)

// LabelMode returns the effective label mode by precedence: structured
// (title or content_list), then html_label, then label.
func (r *Relation) LabelMode() LabelMode {
	switch {
	case r.Title != "" || len(r.ContentList) > 0:
		return LabelStructured
	case r.HTMLLabel != "":
		return LabelHTML
	case r.Label != "":
		return LabelPlain
	default:
		return LabelNone
	}
}

// Groups returns the distinct non-empty group names in first-appearance
// order.
func (d *Document) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range d.Elements {
		if e.Group == "" || seen[e.Group] {
			continue
		}
		seen[e.Group] = true
		groups = append(groups, e.Group)
	}
	return groups
}

// Empty returns a document with no elements or relations. Both slices are
// non-nil so it encodes as {"elements":[],"relations":[]}.
func Empty() *Document {
	return &Document{Elements: []Element{}, Relations: []Relation{}}
}
