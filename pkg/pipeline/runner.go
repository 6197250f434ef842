package pipeline

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mandel/pkg/cache"
	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/io"
	"github.com/matzehuels/mandel/pkg/observability"
)

// keyTypeRender names render entries in cache hook events.
const keyTypeRender = "render"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cache entries written by the runner.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLRender,
	}
}

// Execute renders opts.Request, serving it from the cache when possible.
//
// Validation errors are returned before any work starts. Cache failures are
// logged at debug level and never fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := opts.Request
	result := &Result{Key: r.Keyer.RenderKey(cache.RenderKeyOptsFor(req))}
	logger := opts.Logger

	if !opts.Refresh {
		if buf, ok := r.lookup(ctx, logger, result.Key); ok {
			result.Buffer = buf
			result.Cached = true
			logger.Debug("render served from cache", "key", result.Key)
			return result, nil
		}
	}

	workers := req.ResolvedWorkers()
	result.Stats.Workers = workers
	logger.Debug("rendering",
		"size", formatSize(req.Width, req.Height),
		"upper_left", req.UpperLeft,
		"lower_right", req.LowerRight,
		"limit", req.Limit,
		"workers", workers)
	if !req.Oriented() {
		logger.Debug("corners are not upper-left/lower-right, image will be mirrored")
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, req.Width, req.Height, workers)

	var (
		mu      sync.Mutex
		bands   int
		slowest time.Duration
	)
	onBand := func(s fractal.BandStat) {
		hooks.OnBandComplete(ctx, s.Band, s.Rows.Rows(), s.Duration)
		logger.Debug("band complete", "band", s.Band, "rows", s.Rows.Rows(), "duration", s.Duration)
		mu.Lock()
		bands++
		slowest = max(slowest, s.Duration)
		mu.Unlock()
	}

	start := time.Now()
	buf, err := fractal.Render(req, fractal.WithBandHook(onBand))
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, req.Width*req.Height, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	result.Buffer = buf
	result.Stats.Bands = bands
	result.Stats.SlowestBand = slowest

	logger.Info("rendered",
		"size", formatSize(req.Width, req.Height),
		"bands", bands,
		"duration", result.Stats.RenderTime.Round(time.Millisecond))

	r.store(ctx, logger, result.Key, buf)
	return result, nil
}

// lookup returns the cached buffer for key, if any.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string) (fractal.Buffer, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeRender)
		return fractal.Buffer{}, false
	}

	buf, err := io.UnmarshalZst(data)
	if err != nil {
		// Unreadable entry, drop it and recompute
		logger.Debug("discarding corrupt cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeRender)
		return fractal.Buffer{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeRender)
	return buf, true
}

// store writes buf to the cache. Failures are logged and ignored.
func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, buf fractal.Buffer) {
	data, err := io.MarshalZst(buf)
	if err != nil {
		logger.Debug("cache encode failed", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeRender, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func formatSize(w, h int) string {
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}
