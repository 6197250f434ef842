package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, 800, 600, 8)
	r.OnBandComplete(ctx, 0, 75, time.Millisecond)
	r.OnRenderComplete(ctx, 800*600, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/v1/render")
	h.OnResponse(ctx, "GET", "/api/v1/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()
	defer Reset()

	// Verify defaults are noop
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	counters := NewCounters()
	SetRenderHooks(counters)
	if Render() != counters {
		t.Error("SetRenderHooks should set custom hooks")
	}
	SetCacheHooks(counters)
	if Cache() != counters {
		t.Error("SetCacheHooks should set custom hooks")
	}
	SetHTTPHooks(counters)
	if HTTP() != counters {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil is ignored
	SetRenderHooks(nil)
	if Render() != counters {
		t.Error("SetRenderHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore NoopRenderHooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnBandComplete(ctx, i, 10, time.Millisecond)
		}()
	}
	wg.Wait()

	c.OnRenderComplete(ctx, 100, 2*time.Millisecond, nil)
	c.OnRenderComplete(ctx, 100, time.Millisecond, errors.New("band failed"))
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 512)
	c.OnRequest(ctx, "GET", "/a")
	c.OnRequest(ctx, "GET", "/b")
	c.OnRequest(ctx, "GET", "/c")
	c.OnResponse(ctx, "GET", "/a", 200, 0)
	c.OnResponse(ctx, "GET", "/b", 400, 0)

	got := c.Snapshot()
	want := Snapshot{
		Renders:      2,
		RenderErrors: 1,
		Bands:        8,
		Pixels:       100,
		RenderTime:   2 * time.Millisecond,
		CacheHits:    1,
		CacheMisses:  2,
		CacheSets:    1,
		CacheBytes:   512,
		Requests:     3,
		ClientErrors: 1,
		InFlight:     1,
	}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
