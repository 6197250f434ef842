package fractal

import "fmt"

// Colorizer maps an escape result to a grayscale byte. Implementations must
// be pure functions of the result and the iteration limit, and safe for
// concurrent use by every worker of a render.
type Colorizer func(r EscapeResult, limit uint32) byte

// Palette names a built-in Colorizer.
type Palette uint8

const (
	// PaletteLinear scales the escape iteration across the full byte range.
	PaletteLinear Palette = iota

	// PaletteSaturate subtracts the escape iteration from 255, saturating.
	PaletteSaturate
)

// String returns the configuration name of the palette.
func (p Palette) String() string {
	switch p {
	case PaletteLinear:
		return "linear"
	case PaletteSaturate:
		return "saturate"
	}
	return fmt.Sprintf("Palette(%d)", uint8(p))
}

// ParsePalette parses a palette name. The empty string selects PaletteLinear.
func ParsePalette(s string) (Palette, error) {
	switch s {
	case "", "linear":
		return PaletteLinear, nil
	case "saturate":
		return PaletteSaturate, nil
	}
	return 0, fmt.Errorf("unknown palette %q (must be linear or saturate)", s)
}

// Colorizer returns the color function for p.
func (p Palette) Colorizer() Colorizer {
	if p == PaletteSaturate {
		return Saturate
	}
	return Colorize
}

// Colorize is the default Colorizer. Bounded points are black (0). A point
// that escaped at iteration k gets 255 - k*255/limit, so fast escapes are
// light and slow escapes approach black without ever reaching it.
func Colorize(r EscapeResult, limit uint32) byte {
	if !r.Escaped || limit == 0 {
		return 0
	}
	k := uint64(r.Iteration)
	if k >= uint64(limit) {
		k = uint64(limit) - 1
	}
	return byte(255 - k*255/uint64(limit))
}

// Saturate is a Colorizer that ignores the limit: 255 minus the escape
// iteration, floored at 1 so escaped points stay distinct from bounded ones.
func Saturate(r EscapeResult, _ uint32) byte {
	if !r.Escaped {
		return 0
	}
	if r.Iteration >= 254 {
		return 1
	}
	return byte(255 - r.Iteration)
}
