package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matzehuels/archview/pkg/compose"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/overlay"
	"github.com/matzehuels/archview/pkg/theme"
)

func newAssembler() *Assembler {
	p := theme.Resolve(theme.Light)
	cfg := theme.DefaultConfig()
	return NewAssembler(
		compose.NewNodeCompositor(p, cfg, overlay.NewRegistry(p)),
		compose.NewEdgeCompositor(p, cfg),
		cfg,
	)
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{"ok", []Node{{ID: "a"}, {ID: "b"}}, nil},
		{"empty id", []Node{{ID: ""}}, ErrInvalidNodeID},
		{"duplicate", []Node{{ID: "a"}, {ID: "a"}}, ErrDuplicateNodeID},
		{"cluster and element clash", []Node{{ID: "g", Kind: KindCluster}, {ID: "g"}}, ErrDuplicateNodeID},
		{"unknown parent", []Node{{ID: "a", Parent: "nope"}}, ErrUnknownParent},
		{"parent is not a cluster", []Node{{ID: "a"}, {ID: "b", Parent: "a"}}, ErrUnknownParent},
		{"parent cluster", []Node{{ID: "g", Kind: KindCluster}, {ID: "a", Parent: "g"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			var err error
			for _, n := range tt.nodes {
				if err = g.AddNode(n); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("unknown from: got %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "y"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("unknown to: got %v", err)
	}
	if got := g.Edges()[0].ID; got != "e0" {
		t.Errorf("generated edge id = %q, want e0", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestAssemble(t *testing.T) {
	doc := &diagram.Document{
		Elements: []diagram.Element{
			{ID: "user", Type: "person", Group: "Clients"},
			{ID: "api", Type: "system", Group: "Backend", HTMLContent: "<b>api</b>"},
			{ID: "db", Type: "database", Group: "Backend", Width: 240},
			{ID: "ext"},
		},
		Relations: []diagram.Relation{
			{From: "user", To: "api", Label: "calls"},
			{From: "api", To: "db", Style: "dashed", Color: "#ff0000"},
		},
	}

	g, err := newAssembler().Assemble(doc, Options{RankDir: theme.RankLR})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var order []string
	for _, n := range g.Nodes() {
		order = append(order, n.ID)
	}
	want := []string{"Clients", "Backend", "user", "api", "db", "ext"}
	if len(order) != len(want) {
		t.Fatalf("nodes = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("nodes = %v, want %v", order, want)
		}
	}

	if len(g.Clusters()) != 2 || len(g.Members("Backend")) != 2 || len(g.TopLevel()) != 3 {
		t.Errorf("clusters=%d backend=%d top=%d", len(g.Clusters()), len(g.Members("Backend")), len(g.TopLevel()))
	}

	backend, _ := g.Node("Backend")
	if backend.HeaderHeight != HeaderHeight || backend.HeaderWidth <= 2*20+HeaderIconSize+HeaderIconGap {
		t.Errorf("header = %vx%v", backend.HeaderWidth, backend.HeaderHeight)
	}

	api, _ := g.Node("api")
	if api.Width != compose.HTMLWidth || api.Height != compose.HTMLHeight || api.Mode != diagram.ModeHTML {
		t.Errorf("api node = %+v", api)
	}
	db, _ := g.Node("db")
	if db.Width != 240 || db.Height != compose.FallbackHeight {
		t.Errorf("db size = %vx%v, want 240x100", db.Width, db.Height)
	}

	if g.RankDir != theme.RankLR || g.NodeSep != 50 || g.RankSep != 70 {
		t.Errorf("layout options = %s %v %v", g.RankDir, g.NodeSep, g.RankSep)
	}

	edges := g.Edges()
	if !edges[0].HasLabel || edges[0].LabelHeight != compose.PlainLabelH || edges[0].LabelMarkup == "" {
		t.Errorf("labelled edge = %+v", edges[0])
	}
	if edges[1].HasLabel || edges[1].Style != "dashed" || edges[1].Color != "#ff0000" || edges[1].ID != "e1" {
		t.Errorf("plain edge = %+v", edges[1])
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     *diagram.Document
		wantErr error
	}{
		{
			name: "dangling from",
			doc: &diagram.Document{
				Elements:  []diagram.Element{{ID: "a"}},
				Relations: []diagram.Relation{{From: "ghost", To: "a"}},
			},
			wantErr: ErrUnknownSourceNode,
		},
		{
			name: "dangling to",
			doc: &diagram.Document{
				Elements:  []diagram.Element{{ID: "a"}},
				Relations: []diagram.Relation{{From: "a", To: "ghost"}},
			},
			wantErr: ErrUnknownTargetNode,
		},
		{
			name:    "duplicate element",
			doc:     &diagram.Document{Elements: []diagram.Element{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "element named like a group",
			doc:     &diagram.Document{Elements: []diagram.Element{{ID: "x", Group: "core"}, {ID: "core"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "empty id",
			doc:     &diagram.Document{Elements: []diagram.Element{{ID: ""}}},
			wantErr: ErrInvalidNodeID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAssembler().Assemble(tt.doc, Options{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Assemble() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteGraph(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "g", Kind: KindCluster, Width: 300, Height: 200, X: 150, Y: 100})
	_ = g.AddNode(Node{ID: "a", Parent: "g", Width: 100, Height: 50, X: 150, Y: 100})
	_ = g.AddEdge(Edge{From: "a", To: "a", HasLabel: true, LabelX: 5, LabelY: 6})
	g.Width, g.Height = 300, 200

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	var out Export
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Nodes) != 2 || out.Nodes[0].Kind != "cluster" || out.Nodes[1].X != 100 || out.Nodes[1].Y != 75 {
		t.Errorf("nodes = %+v", out.Nodes)
	}
	if out.Edges[0].Label == nil || out.Edges[0].Label.X != 5 || out.Edges[0].Points == nil {
		t.Errorf("edges = %+v", out.Edges)
	}
}
