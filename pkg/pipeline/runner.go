package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archview/pkg/cache"
	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/layout"
	"github.com/matzehuels/archview/pkg/observability"
	"github.com/matzehuels/archview/pkg/theme"
)

const cacheKeyType = "artifact"

// Runner wraps [Generate] with an artifact cache.
//
// The Runner holds no per-pass state. Multiple goroutines can safely use
// the same Runner with different documents and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine layout.Engine
	Themes *theme.Registry
	TTL    time.Duration
	Logger *log.Logger
}

// Result is the outcome of one cached render.
type Result struct {
	SVG      []byte
	Key      string
	CacheHit bool
	Duration time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil engine the shared Graphviz engine.
func NewRunner(c cache.Cache, keyer cache.Keyer, engine layout.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if engine == nil {
		engine = defaultEngine
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: engine,
		Themes: theme.Default(),
		TTL:    cache.TTLArtifact,
		Logger: logger,
	}
}

// Generate returns the cached artifact for (doc, opts) or renders and
// stores it. Cache failures are logged and never fail the render.
func (r *Runner) Generate(ctx context.Context, doc *diagram.Document, opts Options) (*Result, error) {
	if doc == nil {
		doc = diagram.Empty()
	}
	if opts.Engine == nil {
		opts.Engine = r.Engine
	}
	if opts.Themes == nil {
		opts.Themes = r.Themes
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key, err := r.Key(doc, opts)
	if err != nil {
		return nil, err
	}

	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		r.Logger.Debug("artifact cache hit", "bytes", len(data))
		return &Result{SVG: data, Key: key, CacheHit: true, Duration: time.Since(start)}, nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	svg, err := Generate(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, svg, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(svg))
	}

	result := &Result{SVG: svg, Key: key, Duration: time.Since(start)}
	r.Logger.Debug("rendered diagram",
		"elements", len(doc.Elements),
		"relations", len(doc.Relations),
		"theme", opts.Palette,
		"layout", opts.RankDir,
		"bytes", len(svg),
		"duration", result.Duration)
	return result, nil
}

// Key returns the cache key of the artifact rendered from doc under opts.
// opts must have defaults applied.
func (r *Runner) Key(doc *diagram.Document, opts Options) (string, error) {
	docHash, err := DocumentHash(doc)
	if err != nil {
		return "", err
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.Default()
	}
	return r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{
		Palette:    paletteFingerprint(themes.Resolve(opts.Palette)),
		Config:     configFingerprint(opts.Config),
		RankDir:    opts.RankDir,
		NodeSep:    opts.NodeSep,
		RankSep:    opts.RankSep,
		LiveReload: opts.LiveReload,
	}), nil
}

// DocumentHash returns the SHA-256 of the document's JSON encoding.
func DocumentHash(doc *diagram.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDocument, err, "document cannot be encoded")
	}
	return cache.Hash(data), nil
}

// paletteFingerprint identifies a palette by name and resolved colors.
func paletteFingerprint(p *theme.Palette) string {
	var b strings.Builder
	b.WriteString(p.Name())
	for _, k := range theme.Keys {
		b.WriteByte(';')
		b.WriteString(p.Get(k))
	}
	return cache.Hash([]byte(b.String()))
}

// configFingerprint identifies every typography and layout setting of c.
func configFingerprint(c *theme.Config) string {
	if c == nil {
		c = theme.DefaultConfig()
	}
	return cache.Hash([]byte(fmt.Sprintf("%+v", *c)))
}
