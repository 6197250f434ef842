package fractal

import "fmt"

// Mapping selects how pixel indices are sampled between the two corners.
type Mapping uint8

const (
	// MapInclusive places the corner points on the centres of the corner
	// pixels: pixel (0, 0) is the upper-left corner and pixel
	// (width-1, height-1) is the lower-right corner.
	MapInclusive Mapping = iota

	// MapExclusive divides the span by the pixel count, so pixel (0, 0) is the
	// upper-left corner and the lower-right corner lies one step past the last
	// pixel.
	MapExclusive
)

// String returns the configuration name of the mapping.
func (m Mapping) String() string {
	switch m {
	case MapInclusive:
		return "inclusive"
	case MapExclusive:
		return "exclusive"
	}
	return fmt.Sprintf("Mapping(%d)", uint8(m))
}

// ParseMapping parses a mapping name. The empty string selects MapInclusive.
func ParseMapping(s string) (Mapping, error) {
	switch s {
	case "", "inclusive":
		return MapInclusive, nil
	case "exclusive":
		return MapExclusive, nil
	}
	return 0, fmt.Errorf("unknown mapping %q (must be inclusive or exclusive)", s)
}

// Viewport is the rectangle of the complex plane covered by an image.
//
// The imaginary axis grows upward while pixel rows grow downward, so the
// expected orientation is real(UpperLeft) <= real(LowerRight) and
// imag(UpperLeft) >= imag(LowerRight). Other orientations produce a mirrored
// image.
type Viewport struct {
	Width, Height int
	UpperLeft     complex128
	LowerRight    complex128
	Mapping       Mapping
}

// Oriented reports whether the corners follow the expected orientation.
func (v Viewport) Oriented() bool {
	return real(v.UpperLeft) <= real(v.LowerRight) && imag(v.UpperLeft) >= imag(v.LowerRight)
}

// Point maps pixel (x, y) to the complex plane using v.Mapping.
// The caller guarantees 0 <= x < Width and 0 <= y < Height.
func (v Viewport) Point(x, y int) complex128 {
	if v.Mapping == MapExclusive {
		return PixelToPoint(x, y, v.Width, v.Height, v.UpperLeft, v.LowerRight)
	}
	return complex(
		lerp(real(v.UpperLeft), real(v.LowerRight), x, v.Width-1),
		lerp(imag(v.UpperLeft), imag(v.LowerRight), y, v.Height-1),
	)
}

// Step returns the distance between neighbouring pixel centres on each axis.
func (v Viewport) Step() (re, im float64) {
	w, h := v.Width, v.Height
	if v.Mapping == MapInclusive {
		w, h = w-1, h-1
	}
	if w > 0 {
		re = (real(v.LowerRight) - real(v.UpperLeft)) / float64(w)
	}
	if h > 0 {
		im = (imag(v.LowerRight) - imag(v.UpperLeft)) / float64(h)
	}
	return re, im
}

// PixelToPoint converts pixel (x, y) of a width×height image into a point on
// the complex plane by linear interpolation on each axis:
//
//	re = real(upperLeft) + x*(real(lowerRight)-real(upperLeft))/width
//	im = imag(upperLeft) + y*(imag(lowerRight)-imag(upperLeft))/height
//
// It is a pure function; identical inputs yield bit-identical output.
func PixelToPoint(x, y, width, height int, upperLeft, lowerRight complex128) complex128 {
	return complex(
		lerp(real(upperLeft), real(lowerRight), x, width),
		lerp(imag(upperLeft), imag(lowerRight), y, height),
	)
}

// lerp returns from + i*(to-from)/n, or from when n is zero.
func lerp(from, to float64, i, n int) float64 {
	if n <= 0 {
		return from
	}
	return from + float64(i)*(to-from)/float64(n)
}
