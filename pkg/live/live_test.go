package live

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/errors"
)

type fakeWatcher struct {
	events chan struct{}
	errs   chan error
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan struct{}), errs: make(chan error)}
}

func (w *fakeWatcher) Events() <-chan struct{} { return w.events }
func (w *fakeWatcher) Errors() <-chan error    { return w.errs }
func (w *fakeWatcher) Close() error            { return nil }

// countingRender writes the element ids into a fake artifact and counts
// calls.
func countingRender(calls *atomic.Int64) RenderFunc {
	return func(ctx context.Context, doc *diagram.Document) ([]byte, error) {
		calls.Add(1)
		var b bytes.Buffer
		b.WriteString("<svg>")
		for _, e := range doc.Elements {
			fmt.Fprintf(&b, "<g id=%q/>", e.ID)
		}
		b.WriteString("</svg>")
		return b.Bytes(), nil
	}
}

func writeSource(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func quiet() Option { return WithLogger(log.New(io.Discard)) }

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yaml")
	writeSource(t, path, "elements:\n  - id: api\nrelations: []\n")

	var calls atomic.Int64
	c := New(path, countingRender(&calls), quiet())
	if c.Artifact() != nil || c.Document() != nil {
		t.Error("nothing should be published before Load")
	}
	sub := c.Subscribe()
	defer sub.Close()

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(c.Artifact()) != `<svg><g id="api"/></svg>` {
		t.Errorf("artifact = %s", c.Artifact())
	}
	if got := c.Document().Elements[0].ID; got != "api" {
		t.Errorf("document element = %q", got)
	}
	select {
	case msg := <-sub.C:
		t.Errorf("Load should not notify, got %q", msg)
	default:
	}
}

func TestLoadMissingSource(t *testing.T) {
	var calls atomic.Int64
	c := New(filepath.Join(t.TempDir(), "missing.yaml"), countingRender(&calls), quiet())
	err := c.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeSourceRead) {
		t.Errorf("Load() error = %v, want SOURCE_READ", err)
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yaml")
	writeSource(t, path, "elements:\n  - id: a\n")

	var calls atomic.Int64
	w := newFakeWatcher()
	c := New(path, countingRender(&calls), WithWatcher(w), WithDebounce(30*time.Millisecond), quiet())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	calls.Store(0)

	sub := c.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	writeSource(t, path, "elements:\n  - id: a\n  - id: b\n")
	for i := 0; i < 3; i++ {
		w.events <- struct{}{}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case msg := <-sub.C:
		if msg != ReloadMessage {
			t.Errorf("message = %q, want %q", msg, ReloadMessage)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload notification")
	}
	select {
	case msg := <-sub.C:
		t.Errorf("unexpected second notification %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("regenerations = %d, want 1", n)
	}
	if !bytes.Contains(c.Artifact(), []byte(`id="b"`)) {
		t.Errorf("artifact not updated: %s", c.Artifact())
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestRegenerateKeepsLastGoodArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yaml")
	writeSource(t, path, "elements:\n  - id: good\n")

	var calls atomic.Int64
	var statuses []Status
	c := New(path, countingRender(&calls), quiet(), WithStatusFunc(func(s Status) { statuses = append(statuses, s) }))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot()
	sub := c.Subscribe()
	defer sub.Close()

	writeSource(t, path, "elements: [unclosed\n")
	if err := c.Regenerate(context.Background()); err == nil {
		t.Fatal("expected error for broken source")
	}
	if c.Snapshot() != before {
		t.Error("failed regeneration replaced the snapshot")
	}
	select {
	case <-sub.C:
		t.Error("failed regeneration notified subscribers")
	default:
	}
	st := c.Status()
	if st.Failures != 1 || st.LastError == "" || st.Elements != 1 {
		t.Errorf("status = %+v", st)
	}

	writeSource(t, path, "elements:\n  - id: fixed\n")
	if err := c.Regenerate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Status().LastError != "" {
		t.Error("successful regeneration should clear the last error")
	}
	if len(statuses) != 2 {
		t.Errorf("status callbacks = %d, want 2", len(statuses))
	}
}

func TestRegenerateRenderFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yaml")
	writeSource(t, path, "elements:\n  - id: a\n")

	fail := false
	render := func(ctx context.Context, doc *diagram.Document) ([]byte, error) {
		if fail {
			return nil, errors.New(errors.ErrCodeRender, "layout failed")
		}
		return []byte("<svg/>"), nil
	}
	c := New(path, render, quiet())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	fail = true
	if err := c.Regenerate(context.Background()); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Regenerate() = %v", err)
	}
	if string(c.Artifact()) != "<svg/>" {
		t.Error("last good artifact lost")
	}
}

func TestHubPrunesClosedSubscribers(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	if a.ID == b.ID {
		t.Error("subscriber ids should be unique")
	}
	if h.Len() != 2 {
		t.Fatalf("Len() = %d", h.Len())
	}
	a.Close()
	a.Close()
	if h.Len() != 1 {
		t.Errorf("Len() after close = %d, want 1", h.Len())
	}
	if n := h.Broadcast(ReloadMessage); n != 1 {
		t.Errorf("delivered = %d, want 1", n)
	}
	b.Close()
}

func TestHubFullSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	slow, fast := h.Subscribe(), h.Subscribe()
	defer slow.Close()
	defer fast.Close()

	for i := 0; i < 3; i++ {
		done := make(chan int, 1)
		go func() { done <- h.Broadcast(ReloadMessage) }()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Broadcast blocked on a full subscriber")
		}
		select {
		case <-fast.C:
		case <-time.After(time.Second):
			t.Fatalf("fast subscriber missed broadcast %d", i)
		}
	}
	if msg := <-slow.C; msg != ReloadMessage {
		t.Errorf("slow subscriber kept %q", msg)
	}
}
