// Package live keeps a rendered diagram in sync with its source file.
//
// A [Controller] owns the current (document, artifact) snapshot. It watches
// the source, coalesces bursts of change events with a timer, regenerates
// once per burst and notifies subscribers through a [Hub]. A failed
// regeneration is logged and the last good snapshot stays published.
package live

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/observability"
)

// DefaultDebounce is the quiet period after the last change event before
// the source is regenerated.
const DefaultDebounce = 100 * time.Millisecond

// RenderFunc renders a document to an artifact.
type RenderFunc func(ctx context.Context, doc *diagram.Document) ([]byte, error)

// Snapshot is one published (document, artifact) pair.
type Snapshot struct {
	Document  *diagram.Document
	Artifact  []byte
	Generated time.Time
}

// Status summarizes the controller for display.
type Status struct {
	Source      string
	Generated   time.Time
	Elements    int
	Relations   int
	Bytes       int
	Subscribers int
	Regenerated int64
	Failures    int64
	LastError   string
}

// Controller regenerates the artifact of one source file.
type Controller struct {
	path     string
	render   RenderFunc
	debounce time.Duration
	watcher  Watcher
	hub      *Hub
	logger   *log.Logger

	snap        atomic.Pointer[Snapshot]
	lastErr     atomic.Pointer[string]
	regenerated atomic.Int64
	failures    atomic.Int64
	onChange    func(Status)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithWatcher replaces the file system watcher.
func WithWatcher(w Watcher) Option { return func(c *Controller) { c.watcher = w } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithStatusFunc registers fn to be called after every regeneration
// attempt.
func WithStatusFunc(fn func(Status)) Option { return func(c *Controller) { c.onChange = fn } }

// New returns a controller for the source at path.
func New(path string, render RenderFunc, opts ...Option) *Controller {
	c := &Controller{
		path:     path,
		render:   render,
		debounce: DefaultDebounce,
		hub:      NewHub(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads and renders the source once and publishes the result without
// notifying subscribers. Callers treat its error as fatal.
func (c *Controller) Load(ctx context.Context) error {
	snap, err := c.generate(ctx)
	if err != nil {
		return err
	}
	c.snap.Store(snap)
	return nil
}

// Regenerate reads and renders the source. On success the new snapshot is
// published and subscribers are told to reload; on failure the previous
// snapshot stays in place.
func (c *Controller) Regenerate(ctx context.Context) error {
	start := time.Now()
	snap, err := c.generate(ctx)
	observability.Live().OnRegenerate(ctx, c.path, time.Since(start), err)
	if err != nil {
		c.failures.Add(1)
		msg := err.Error()
		c.lastErr.Store(&msg)
		c.logger.Error("regeneration failed, keeping last artifact", "source", c.path, "error", err)
		c.notify()
		return err
	}

	c.snap.Store(snap)
	c.lastErr.Store(nil)
	c.regenerated.Add(1)
	n := c.hub.Broadcast(ReloadMessage)
	observability.Live().OnBroadcast(ctx, n)
	c.logger.Info("regenerated",
		"source", c.path,
		"elements", len(snap.Document.Elements),
		"subscribers", n,
		"duration", time.Since(start))
	c.notify()
	return nil
}

func (c *Controller) generate(ctx context.Context) (*Snapshot, error) {
	doc, err := diagram.ReadFile(c.path)
	if err != nil {
		return nil, err
	}
	svg, err := c.render(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Document: doc, Artifact: svg, Generated: time.Now()}, nil
}

// Run watches the source until ctx is done. Only the last change of a burst
// within the debounce window triggers a regeneration.
func (c *Controller) Run(ctx context.Context) error {
	w := c.watcher
	if w == nil {
		var err error
		if w, err = WatchFile(c.path); err != nil {
			return err
		}
	}
	defer w.Close()
	c.logger.Debug("watching source", "source", c.path, "debounce", c.debounce)

	timer := time.NewTimer(c.debounce)
	timer.Stop()
	defer timer.Stop()

	errs := w.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events():
			if !ok {
				return nil
			}
			timer.Reset(c.debounce)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.logger.Warn("watch error", "source", c.path, "error", err)
		case <-timer.C:
			_ = c.Regenerate(ctx)
		}
	}
}

// Subscribe registers for reload notifications.
func (c *Controller) Subscribe() *Subscription { return c.hub.Subscribe() }

// Hub returns the subscriber hub.
func (c *Controller) Hub() *Hub { return c.hub }

// Snapshot returns the current snapshot, or nil before the first load.
func (c *Controller) Snapshot() *Snapshot { return c.snap.Load() }

// Document returns the current document, or nil before the first load.
func (c *Controller) Document() *diagram.Document {
	if s := c.snap.Load(); s != nil {
		return s.Document
	}
	return nil
}

// Artifact returns the current artifact, or nil before the first load.
func (c *Controller) Artifact() []byte {
	if s := c.snap.Load(); s != nil {
		return s.Artifact
	}
	return nil
}

// Status returns a summary of the controller state.
func (c *Controller) Status() Status {
	st := Status{
		Source:      c.path,
		Subscribers: c.hub.Len(),
		Regenerated: c.regenerated.Load(),
		Failures:    c.failures.Load(),
	}
	if s := c.snap.Load(); s != nil {
		st.Generated = s.Generated
		st.Elements = len(s.Document.Elements)
		st.Relations = len(s.Document.Relations)
		st.Bytes = len(s.Artifact)
	}
	if msg := c.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	return st
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Status())
	}
}
