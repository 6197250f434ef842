package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is an in-process implementation of every hook interface that
// keeps running totals. The server exposes its Snapshot as JSON.
type Counters struct {
	renders      atomic.Int64
	renderErrors atomic.Int64
	bands        atomic.Int64
	pixels       atomic.Int64
	renderNanos  atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheSets    atomic.Int64
	cacheBytes   atomic.Int64
	requests     atomic.Int64
	responses4xx atomic.Int64
	responses5xx atomic.Int64
	inFlight     atomic.Int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Renders      int64         `json:"renders"`
	RenderErrors int64         `json:"render_errors"`
	Bands        int64         `json:"bands"`
	Pixels       int64         `json:"pixels"`
	RenderTime   time.Duration `json:"render_time_ns"`
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	CacheSets    int64         `json:"cache_sets"`
	CacheBytes   int64         `json:"cache_bytes"`
	Requests     int64         `json:"requests"`
	ClientErrors int64         `json:"responses_4xx"`
	ServerErrors int64         `json:"responses_5xx"`
	InFlight     int64         `json:"in_flight"`
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Renders:      c.renders.Load(),
		RenderErrors: c.renderErrors.Load(),
		Bands:        c.bands.Load(),
		Pixels:       c.pixels.Load(),
		RenderTime:   time.Duration(c.renderNanos.Load()),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
		CacheSets:    c.cacheSets.Load(),
		CacheBytes:   c.cacheBytes.Load(),
		Requests:     c.requests.Load(),
		ClientErrors: c.responses4xx.Load(),
		ServerErrors: c.responses5xx.Load(),
		InFlight:     c.inFlight.Load(),
	}
}

func (c *Counters) OnRenderStart(context.Context, int, int, int) {}

func (c *Counters) OnBandComplete(_ context.Context, _, _ int, _ time.Duration) {
	c.bands.Add(1)
}

func (c *Counters) OnRenderComplete(_ context.Context, pixels int, d time.Duration, err error) {
	c.renders.Add(1)
	if err != nil {
		c.renderErrors.Add(1)
		return
	}
	c.pixels.Add(int64(pixels))
	c.renderNanos.Add(int64(d))
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheSets.Add(1)
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.requests.Add(1)
	c.inFlight.Add(1)
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.inFlight.Add(-1)
	switch {
	case status >= 500:
		c.responses5xx.Add(1)
	case status >= 400:
		c.responses4xx.Add(1)
	}
}

var (
	_ RenderHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)
