// Package cache memoizes rendered artifacts.
//
// A [Cache] stores opaque byte slices under string keys with an optional
// time-to-live. Keys are built by a [Keyer] from the content hash of the
// source document and the render options, so a cached artifact is only ever
// reused for byte-identical inputs.
//
// Backends:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: in-process map with expiry, for the live server
//   - [FileCache]: one file per entry under the user cache directory, for
//     the CLI
//   - [RedisCache]: shared cache for several server instances
//
// The cache holds derived output only. Losing it never loses data.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value stored under key. A miss is reported with
	// hit == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 24 * time.Hour

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	// Palette identifies the resolved colors, not just the palette name, so
	// configured overrides produce distinct keys.
	Palette    string  `json:"palette"`
	// Config identifies the typography settings.
	Config     string  `json:"config"`
	RankDir    string  `json:"rankdir"`
	NodeSep    float64 `json:"nodesep"`
	RankSep    float64 `json:"ranksep"`
	LiveReload bool    `json:"live_reload"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of the artifact rendered from the
	// document with content hash docHash under opts.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
