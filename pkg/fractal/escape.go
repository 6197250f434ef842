package fractal

import "fmt"

// escapeRadiusSq is the squared escape radius. Once |z| > 2 the orbit
// diverges, and comparing squared magnitudes avoids a square root.
const escapeRadiusSq = 4.0

// EscapeResult classifies one point: either bounded within the iteration
// limit, or escaped at a 0-indexed iteration k < limit.
type EscapeResult struct {
	Escaped   bool
	Iteration uint32
}

// Bounded returns the result for a point that never escaped.
func Bounded() EscapeResult { return EscapeResult{} }

// EscapedAt returns the result for a point that escaped at iteration k.
func EscapedAt(k uint32) EscapeResult { return EscapeResult{Escaped: true, Iteration: k} }

func (r EscapeResult) String() string {
	if !r.Escaped {
		return "bounded"
	}
	return fmt.Sprintf("escaped at %d", r.Iteration)
}

// Escape iterates z = z*z + c from z = 0 for at most limit iterations.
//
// It returns EscapedAt(i) for the first iteration i at which |z|² > 4, and
// Bounded() if all limit iterations stay inside the radius-2 disk. With
// limit 0 no iteration runs and the point is reported as bounded.
func Escape(c complex128, limit uint32) EscapeResult {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	for i := uint32(0); i < limit; i++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > escapeRadiusSq {
			return EscapedAt(i)
		}
	}
	return Bounded()
}
