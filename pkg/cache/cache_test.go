package cache

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mandel/pkg/fractal"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func testRequest() fractal.Request {
	return fractal.Request{
		Viewport: fractal.Viewport{
			Width:      100,
			Height:     75,
			UpperLeft:  complex(-1.2, 0.35),
			LowerRight: complex(-1, 0.2),
		},
		Limit: 255,
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.RenderKey(RenderKeyOptsFor(testRequest()))

	if !strings.HasPrefix(base, "render:") {
		t.Errorf("RenderKey = %q, want render: prefix", base)
	}
	if again := k.RenderKey(RenderKeyOptsFor(testRequest())); again != base {
		t.Error("RenderKey should be deterministic")
	}

	// Worker count does not change the pixels, so it must not change the key
	req := testRequest()
	req.Workers = 16
	if got := k.RenderKey(RenderKeyOptsFor(req)); got != base {
		t.Error("Workers should not be part of the render key")
	}

	changes := map[string]func(*fractal.Request){
		"width":   func(r *fractal.Request) { r.Width++ },
		"height":  func(r *fractal.Request) { r.Height++ },
		"ul":      func(r *fractal.Request) { r.UpperLeft += 1e-12 },
		"lr":      func(r *fractal.Request) { r.LowerRight -= 1e-12i },
		"limit":   func(r *fractal.Request) { r.Limit = 256 },
		"palette": func(r *fractal.Request) { r.Palette = fractal.PaletteSaturate },
		"mapping": func(r *fractal.Request) { r.Mapping = fractal.MapExclusive },
	}
	for name, change := range changes {
		req := testRequest()
		change(&req)
		if k.RenderKey(RenderKeyOptsFor(req)) == base {
			t.Errorf("changing %s should change the render key", name)
		}
	}
}

func TestRenderDigest(t *testing.T) {
	base := RenderKeyOptsFor(testRequest())
	key := renderDigest(base)
	if len(key) != 64 {
		t.Errorf("digest length = %d, want 64", len(key))
	}

	negZero := math.Copysign(0, -1)
	tests := []struct {
		name string
		a, b func(*RenderKeyOpts)
		same bool
	}{
		{
			name: "negative zero",
			a:    func(o *RenderKeyOpts) { o.LRRe = 0 },
			b:    func(o *RenderKeyOpts) { o.LRRe = negZero },
			same: true,
		},
		{
			name: "last bit of a corner",
			a:    func(o *RenderKeyOpts) {},
			b:    func(o *RenderKeyOpts) { o.ULRe = math.Nextafter(o.ULRe, 0) },
		},
		{
			name: "swapped palette and mapping",
			a:    func(o *RenderKeyOpts) {},
			b:    func(o *RenderKeyOpts) { o.Palette, o.Mapping = o.Mapping, o.Palette },
		},
		{
			name: "string boundary",
			a:    func(o *RenderKeyOpts) { o.Palette, o.Mapping = "a", "bc" },
			b:    func(o *RenderKeyOpts) { o.Palette, o.Mapping = "ab", "c" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base, base
			tt.a(&a)
			tt.b(&b)
			if got := renderDigest(a) == renderDigest(b); got != tt.same {
				t.Errorf("digests equal = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "mandel:v1:")

	opts := RenderKeyOptsFor(testRequest())
	key := scoped.RenderKey(opts)
	if key != "mandel:v1:"+inner.RenderKey(opts) {
		t.Errorf("ScopedKeyer RenderKey unexpected: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.RenderKey(RenderKeyOpts{})
	if !strings.HasPrefix(key, "prefix:render:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

var errPermanent = errors.New("permanent")

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Retryable should preserve the wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("Should stop after 3 attempts: calls=%d err=%v", calls, err)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
