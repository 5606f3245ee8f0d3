package diagram

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/archview/pkg/errors"
)

const sampleYAML = `
elements:
  - id: user
    type: person
    title: Customer
    tags: [people]
  - id: api
    type: system
    group: Backend
    shape:
      type: hexagon
      rotation: 30
    content_list:
      - label: Endpoints
        symbol: api
        values:
          - label: GET /orders
            url: https://example.com/orders
          - label: POST /orders
            modal:
              title: Create
              html_content: "<p>creates an order</p>"
              on: hover
  - id: stats
    type: tableau
    columns: [Name, Count]
    rows:
      - [orders, 12]
      - [refunds, ~]
      - [flag, true]
relations:
  - from: user
    to: api
    label: calls
  - from: api
    to: stats
    title: writes
    content_list:
      - symbol: database
        label: batch
`

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Elements) != 3 || len(doc.Relations) != 2 {
		t.Fatalf("got %d elements, %d relations", len(doc.Elements), len(doc.Relations))
	}

	api := doc.Elements[1]
	if api.Shape == nil || api.Shape.Type != "hexagon" || api.Shape.Rotation != 30 {
		t.Errorf("shape = %+v", api.Shape)
	}
	if got := api.ContentList[0].Values[1].Modal; got == nil || got.On != "hover" {
		t.Errorf("modal = %+v", got)
	}

	want := [][]Cell{{"orders", "12"}, {"refunds", ""}, {"flag", "true"}}
	if got := doc.Elements[2].Rows; !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestDecodeJSONCells(t *testing.T) {
	doc, err := Decode([]byte(`{"elements":[{"id":"t","columns":["a",2],"rows":[[1.5,null,false]]}],"relations":[]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	e := doc.Elements[0]
	if !reflect.DeepEqual(e.Columns, []Cell{"a", "2"}) {
		t.Errorf("columns = %v", e.Columns)
	}
	if !reflect.DeepEqual(e.Rows, [][]Cell{{"1.5", "", "false"}}) {
		t.Errorf("rows = %v", e.Rows)
	}

	if _, err := Decode([]byte(`{"elements":[{"id":"t","rows":[[{"x":1}]]}]}`), FormatJSON); err == nil {
		t.Error("object cell should fail to decode")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"empty yaml", "  \n", FormatYAML},
		{"broken yaml", "elements: [", FormatYAML},
		{"broken json", "{", FormatJSON},
		{"mapping cell", "elements:\n  - id: t\n    rows: [[{a: 1}]]\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, errors.ErrCodeSourceRead) {
				t.Errorf("Decode() error = %v, want SOURCE_READ", err)
			}
		})
	}
}

func TestDecodeDefaultsToEmptyLists(t *testing.T) {
	doc, err := Decode([]byte("elements:\n  - id: a\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(doc)
	if !strings.Contains(string(data), `"relations":[]`) {
		t.Errorf("relations should encode as an empty list: %s", data)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.json")
	if err := os.WriteFile(path, []byte(`{"elements":[{"id":"a"}],"relations":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if doc.Elements[0].ID != "a" {
		t.Errorf("unexpected doc %+v", doc)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, errors.ErrCodeSourceRead) {
		t.Errorf("missing file error = %v, want SOURCE_READ", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":       FormatJSON,
		"A.JSON":       FormatJSON,
		"a.yaml":       FormatYAML,
		"dir.json/a.y": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want ContentMode
	}{
		{"list wins", Element{Type: TypeTable, ContentList: []Section{{}}, HTMLContent: "x"}, ModeList},
		{"html over table", Element{HTMLContent: "<b>x</b>", Columns: []Cell{"a"}}, ModeHTML},
		{"tableau forces table", Element{Type: TypeTable}, ModeTable},
		{"rows imply table", Element{Rows: [][]Cell{{"a"}}}, ModeTable},
		{"fallback", Element{Type: "system", Title: "x"}, ModeFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Mode(); got != tt.want {
				t.Errorf("Mode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelMode(t *testing.T) {
	tests := []struct {
		rel  Relation
		want LabelMode
	}{
		{Relation{Title: "t", HTMLLabel: "h", Label: "l"}, LabelStructured},
		{Relation{ContentList: []LabelItem{{Label: "x"}}}, LabelStructured},
		{Relation{HTMLLabel: "h", Label: "l"}, LabelHTML},
		{Relation{Label: "l"}, LabelPlain},
		{Relation{}, LabelNone},
	}
	for _, tt := range tests {
		if got := tt.rel.LabelMode(); got != tt.want {
			t.Errorf("LabelMode(%+v) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestGroupsFirstAppearanceOrder(t *testing.T) {
	doc := &Document{Elements: []Element{
		{ID: "a", Group: "Storage"}, {ID: "b"}, {ID: "c", Group: "Edge"}, {ID: "d", Group: "Storage"},
	}}
	if got, want := doc.Groups(), []string{"Storage", "Edge"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Document {
		return &Document{
			Elements: []Element{{ID: "a", Group: "G"}, {ID: "b"}},
			Relations: []Relation{{From: "a", To: "b"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(d *Document)
		code   errors.Code
	}{
		{"valid", func(*Document) {}, ""},
		{"dangling target", func(d *Document) { d.Relations[0].To = "zzz" }, errors.ErrCodeInvalidReference},
		{"dangling source", func(d *Document) { d.Relations[0].From = "" }, errors.ErrCodeInvalidReference},
		{"duplicate id", func(d *Document) { d.Elements[1].ID = "a" }, errors.ErrCodeInvalidDocument},
		{"empty id", func(d *Document) { d.Elements[1].ID = "" }, errors.ErrCodeInvalidDocument},
		{"group clashes with id", func(d *Document) { d.Elements[0].Group = "b" }, errors.ErrCodeInvalidDocument},
		{"negative size", func(d *Document) { d.Elements[0].Width = -1 }, errors.ErrCodeInvalidDocument},
		{"script url", func(d *Document) {
			d.Elements[0].ContentList = []Section{{Label: "s", Values: []ListItem{{Label: "x", URL: "javascript:alert(1)"}}}}
		}, errors.ErrCodeInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(d)
			err := d.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestLint(t *testing.T) {
	doc := &Document{
		Elements: []Element{
			{ID: "a", HTMLContent: "x", Shape: nil},
			{ID: "b", Title: "no content"},
			{ID: "c", ContentList: []Section{{Label: "empty"}, {Label: "s", Symbol: "rocket", Values: []ListItem{{Label: "x"}}}}},
		},
		Relations: []Relation{{From: "a", To: "b", Style: "wavy"}},
	}
	findings := strings.Join(doc.Lint(), "\n")
	for _, want := range []string{`"b": no content`, `section 0 needs a label`, `unknown symbol "rocket"`, `unknown style "wavy"`} {
		if !strings.Contains(findings, want) {
			t.Errorf("Lint() missing %q in:\n%s", want, findings)
		}
	}
	if strings.Contains(findings, `"a"`) {
		t.Errorf("element a should be clean:\n%s", findings)
	}
}

func TestClone(t *testing.T) {
	doc, err := Decode([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	cp, err := doc.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(doc, cp) {
		t.Error("clone differs from original")
	}
	cp.Elements[0].Title = "changed"
	if doc.Elements[0].Title == "changed" {
		t.Error("clone shares memory with original")
	}
}

func TestExampleDocument(t *testing.T) {
	doc, err := ReadFile(filepath.Join("..", "..", "examples", "architecture.yaml"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(doc.Elements) != 6 || len(doc.Relations) != 5 {
		t.Errorf("example = %d elements, %d relations", len(doc.Elements), len(doc.Relations))
	}
	if got := doc.Groups(); !reflect.DeepEqual(got, []string{"Edge", "Backend", "Data"}) {
		t.Errorf("Groups() = %v", got)
	}
	for _, w := range doc.Lint() {
		if strings.Contains(w, "unknown") {
			t.Errorf("example uses an unknown name: %s", w)
		}
	}
}
