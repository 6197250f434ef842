// Package pipeline runs a render request through the cache, the parallel
// renderer, and the encoder.
//
// Both the CLI and the API server use this package, so cache keys, logging,
// and hook events are identical for every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Request: req})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.Export(result.Buffer, "out.png", io.FormatPNG)
//
// A cached render is stored in the lossless zst form and decoded on a hit,
// so the buffer returned from a hit is byte-identical to a fresh render.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mandel/pkg/fractal"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Request is the render to perform.
	Request fractal.Request

	// Refresh skips the cache lookup. The result is still written back.
	Refresh bool

	// Logger receives per-run messages. Defaults to the runner's logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the request and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Request.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Buffer is the rendered image.
	Buffer fractal.Buffer

	// Key is the cache key of the render.
	Key string

	// Stats contains timing information.
	Stats Stats

	// Cached reports whether Buffer came from the cache.
	Cached bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Workers    int
	Bands      int
	RenderTime time.Duration

	// SlowestBand is the longest time any single band took. Zero on a
	// cache hit.
	SlowestBand time.Duration
}

// Pixels returns the number of pixels in the result.
func (r *Result) Pixels() int {
	return r.Buffer.Width * r.Buffer.Height
}
