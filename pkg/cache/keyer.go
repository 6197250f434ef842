package cache

import (
	"github.com/matzehuels/mandel/pkg/fractal"
)

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey returns the key for the buffer produced by opts.
	RenderKey(opts RenderKeyOpts) string
}

// RenderKeyOpts are the inputs that determine a rendered buffer.
// The worker count is not one of them: output is identical for any count.
type RenderKeyOpts struct {
	Width, Height int
	ULRe, ULIm    float64
	LRRe, LRIm    float64
	Limit         uint32
	Palette       string
	Mapping       string
}

// RenderKeyOptsFor extracts the key inputs from a render request.
func RenderKeyOptsFor(req fractal.Request) RenderKeyOpts {
	return RenderKeyOpts{
		Width:   req.Width,
		Height:  req.Height,
		ULRe:    real(req.UpperLeft),
		ULIm:    imag(req.UpperLeft),
		LRRe:    real(req.LowerRight),
		LRIm:    imag(req.LowerRight),
		Limit:   req.Limit,
		Palette: req.Palette.String(),
		Mapping: req.Mapping.String(),
	}
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey returns "render:<sha256 of opts>".
func (DefaultKeyer) RenderKey(opts RenderKeyOpts) string {
	return "render:" + renderDigest(opts)
}

var _ Keyer = DefaultKeyer{}
