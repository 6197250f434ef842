package fractal

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/mandel/pkg/errors"
)

// BandStat describes a finished band.
type BandStat struct {
	Band     int
	Rows     RowRange
	Duration time.Duration
}

// BandError reports a worker that failed while filling its band.
type BandError struct {
	Band  int
	Rows  RowRange
	Cause error
}

func (e *BandError) Error() string {
	return fmt.Sprintf("band %d (rows %d-%d): %v", e.Band, e.Rows.Start, e.Rows.End, e.Cause)
}

func (e *BandError) Unwrap() error { return e.Cause }

// Option configures a single Render call.
type Option func(*renderer)

// WithColorizer replaces the Colorizer selected by Request.Palette.
func WithColorizer(c Colorizer) Option {
	return func(r *renderer) {
		if c != nil {
			r.colorize = c
		}
	}
}

// WithBandHook registers fn to be called by each worker once its band is
// complete. fn runs on the worker goroutines and must be safe for concurrent
// use.
func WithBandHook(fn func(BandStat)) Option {
	return func(r *renderer) { r.onBand = fn }
}

type renderer struct {
	colorize Colorizer
	onBand   func(BandStat)
}

// Render computes the image described by req.
//
// The buffer is allocated once and split into row bands, one goroutine per
// band. Workers share only req and write only into their own band. Render
// returns after every worker has finished. If any band failed, the returned
// error wraps a *BandError for each of them and no buffer is returned.
func Render(req Request, opts ...Option) (Buffer, error) {
	if err := req.Validate(); err != nil {
		return Buffer{}, err
	}

	r := renderer{colorize: req.Palette.Colorizer()}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := req.Width, req.Height
	pix := make([]byte, w*h)
	bands, err := Partition(pix, w, h, req.ResolvedWorkers())
	if err != nil {
		return Buffer{}, errs.Wrap(errs.ErrCodeInternal, err, "split %dx%d image", w, h)
	}

	// One slot per band; each worker writes only its own.
	failures := make([]error, len(bands))

	var g errgroup.Group
	for _, b := range bands {
		g.Go(func() error {
			failures[b.Index] = r.fill(req, b)
			return failures[b.Index]
		})
	}
	if g.Wait() != nil {
		failed := 0
		for _, err := range failures {
			if err != nil {
				failed++
			}
		}
		return Buffer{}, errs.Wrap(errs.ErrCodeWorkerFailed, errors.Join(failures...),
			"%d of %d bands failed", failed, len(bands))
	}

	return Buffer{Width: w, Height: h, Pix: pix}, nil
}

// fill renders every pixel of b. A panic is converted into a *BandError.
func (r *renderer) fill(req Request, b Band) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &BandError{Band: b.Index, Rows: b.RowRange, Cause: fmt.Errorf("panic: %v", p)}
		}
	}()

	start := time.Now()
	w := req.Width
	for y := b.Start; y < b.End; y++ {
		off := (y - b.Start) * w
		row := b.Pix[off : off+w]
		for x := range row {
			row[x] = r.colorize(Escape(req.Point(x, y), req.Limit), req.Limit)
		}
	}

	if r.onBand != nil {
		r.onBand(BandStat{Band: b.Index, Rows: b.RowRange, Duration: time.Since(start)})
	}
	return nil
}
