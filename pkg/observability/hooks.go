// Package observability exposes instrumentation points for archview.
//
// Render passes, the artifact cache and the live controller report events
// to process-wide hook sets. The defaults do nothing; a host that wants
// metrics or traces installs its own implementation once at startup:
//
//	observability.SetPipelineHooks(promHooks{})
//	observability.SetLiveHooks(promHooks{})
//
// Emitters fetch the current set at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, "TB", g.NodeCount())
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a render pass.
type PipelineHooks interface {
	// Assemble events
	OnAssembleStart(ctx context.Context, elements, relations int)
	OnAssembleComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, rankDir string, nodeCount int)
	OnLayoutComplete(ctx context.Context, rankDir string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, palette string)
	OnRenderComplete(ctx context.Context, palette string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives artifact cache lookups and writes, tagged with the entry kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// =============================================================================
// Live Hooks
// =============================================================================

// LiveHooks receives events from the live regeneration controller.
type LiveHooks interface {
	// OnRegenerate records one regeneration attempt of the watched source.
	OnRegenerate(ctx context.Context, source string, duration time.Duration, err error)

	// OnBroadcast records a reload notification fanned out to subscribers.
	OnBroadcast(ctx context.Context, subscribers int)

	// OnSubscribersChanged records the subscriber count after a join or leave.
	OnSubscribersChanged(ctx context.Context, subscribers int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAssembleStart(context.Context, int, int)                      {}
func (NoopPipelineHooks) OnAssembleComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopLiveHooks is a no-op implementation of LiveHooks.
type NoopLiveHooks struct{}

func (NoopLiveHooks) OnRegenerate(context.Context, string, time.Duration, error) {}
func (NoopLiveHooks) OnBroadcast(context.Context, int)                            {}
func (NoopLiveHooks) OnSubscribersChanged(context.Context, int)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	liveHooks     LiveHooks     = NoopLiveHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetLiveHooks installs h. A nil h is ignored.
func SetLiveHooks(h LiveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		liveHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Live returns the registered live regeneration hooks.
func Live() LiveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return liveHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	liveHooks = NoopLiveHooks{}
}
