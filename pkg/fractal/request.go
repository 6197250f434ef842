package fractal

import (
	"runtime"

	errs "github.com/matzehuels/mandel/pkg/errors"
)

// DefaultWorkers returns the worker count used when a Request leaves Workers
// at zero: the number of CPUs the Go scheduler may run on.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Request holds everything a render needs. It is read-only while a render is
// in progress and may be shared between concurrent renders.
type Request struct {
	Viewport

	// Limit is the maximum number of iterations per point.
	Limit uint32

	// Workers is the number of bands rendered in parallel. Zero selects
	// DefaultWorkers.
	Workers int

	// Palette selects the built-in Colorizer. WithColorizer overrides it.
	Palette Palette
}

// Validate checks the request before any rendering starts.
func (r Request) Validate() error {
	if err := errs.ValidateDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if err := errs.ValidatePoint("upper-left", r.UpperLeft); err != nil {
		return err
	}
	if err := errs.ValidatePoint("lower-right", r.LowerRight); err != nil {
		return err
	}
	if err := errs.ValidateWorkers(r.Workers); err != nil {
		return err
	}
	if r.Mapping > MapExclusive {
		return errs.New(errs.ErrCodeInvalidMapping, "unknown mapping %v", r.Mapping)
	}
	if r.Palette > PaletteSaturate {
		return errs.New(errs.ErrCodeInvalidPalette, "unknown palette %v", r.Palette)
	}
	return nil
}

// ResolvedWorkers returns the worker count a render of r will use.
func (r Request) ResolvedWorkers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return DefaultWorkers()
}

// Buffer is a rendered image: Width*Height grayscale bytes in row-major
// order with a stride of Width.
type Buffer struct {
	Width, Height int
	Pix           []byte
}

// At returns the byte at pixel (x, y).
func (b Buffer) At(x, y int) byte {
	return b.Pix[y*b.Width+x]
}

// Row returns row y of the buffer.
func (b Buffer) Row(y int) []byte {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}
