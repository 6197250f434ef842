package io

import (
	"image"
	"image/color"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
)

// Theme maps gray pixel values to colors. Gray 0 is always black; values
// 1..255 run through Stops from first to last, so the slowest escapes get
// Stops[0] and the fastest get the final stop.
//
// A Theme without stops keeps the image gray.
type Theme struct {
	Name  string
	Stops []color.RGBA
}

var (
	red        = color.RGBA{255, 0, 0, 255}
	orange     = color.RGBA{255, 127, 0, 255}
	yellow     = color.RGBA{255, 255, 0, 255}
	cyan       = color.RGBA{0, 255, 255, 255}
	aquamarine = color.RGBA{127, 255, 212, 255}
	white      = color.RGBA{255, 255, 255, 255}
	black      = color.RGBA{0, 0, 0, 255}
)

// Built-in themes.
var (
	ThemeGrayscale = Theme{Name: "grayscale"}
	ThemeFire      = Theme{Name: "fire", Stops: []color.RGBA{red, orange, yellow}}
	ThemeWater     = Theme{Name: "water", Stops: []color.RGBA{cyan, aquamarine, white}}
)

var themes = map[string]Theme{
	ThemeGrayscale.Name: ThemeGrayscale,
	ThemeFire.Name:      ThemeFire,
	ThemeWater.Name:     ThemeWater,
}

// ParseTheme returns the built-in theme called name. The empty string
// selects ThemeGrayscale.
func ParseTheme(name string) (Theme, error) {
	if name == "" {
		return ThemeGrayscale, nil
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, errs.New(errs.ErrCodeInvalidTheme, "unknown theme %q (must be grayscale, fire or water)", name)
	}
	return t, nil
}

// Gray reports whether t leaves pixels gray.
func (t Theme) Gray() bool { return len(t.Stops) == 0 }

// Palette returns the 256-entry color table for t, indexed by gray value.
func (t Theme) Palette() color.Palette {
	p := make(color.Palette, 256)
	p[0] = black
	for i := 1; i < 256; i++ {
		p[i] = t.At(byte(i))
	}
	return p
}

// At returns the color for gray value v.
func (t Theme) At(v byte) color.RGBA {
	if v == 0 {
		return black
	}
	switch len(t.Stops) {
	case 0:
		return color.RGBA{v, v, v, 255}
	case 1:
		return t.Stops[0]
	}
	// Spread 1..255 over the len(Stops)-1 segments between stops.
	pos := float64(v-1) / 254 * float64(len(t.Stops)-1)
	seg := int(pos)
	if seg >= len(t.Stops)-1 {
		return t.Stops[len(t.Stops)-1]
	}
	return Blend(t.Stops[seg], t.Stops[seg+1], pos-float64(seg))
}

// Blend mixes a into b by degree: 0 yields a, 1 yields b and 0.5 the
// midpoint. Fractional channel values are truncated.
func Blend(a, b color.RGBA, degree float64) color.RGBA {
	switch {
	case degree <= 0:
		return a
	case degree >= 1:
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*degree)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// Image wraps buf as an image without copying the pixels. Gray themes give
// an *image.Gray; colored themes give an *image.Paletted whose indices are
// the gray values.
func (t Theme) Image(buf fractal.Buffer) image.Image {
	rect := image.Rect(0, 0, buf.Width, buf.Height)
	if t.Gray() {
		return &image.Gray{Pix: buf.Pix, Stride: buf.Width, Rect: rect}
	}
	return &image.Paletted{Pix: buf.Pix, Stride: buf.Width, Rect: rect, Palette: t.Palette()}
}
