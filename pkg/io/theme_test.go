package io

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/mandel/pkg/fractal"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name   string
		a, b   color.RGBA
		degree float64
		want   color.RGBA
	}{
		{"midpoint", black, white, 0.5, color.RGBA{127, 127, 127, 255}},
		{"full", black, white, 1.0, white},
		{"none", black, white, 0.0, black},
		{"same color", red, red, 0.7, red},
		{"clamped high", black, white, 3, white},
		{"clamped low", black, white, -1, black},
		{"descending", yellow, red, 0.5, color.RGBA{255, 127, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(tt.a, tt.b, tt.degree); got != tt.want {
				t.Errorf("Blend(%v, %v, %g) = %v, want %v", tt.a, tt.b, tt.degree, got, tt.want)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	for _, name := range []string{"", "grayscale", "fire", "water"} {
		if _, err := ParseTheme(name); err != nil {
			t.Errorf("ParseTheme(%q) error: %v", name, err)
		}
	}
	if _, err := ParseTheme("neon"); err == nil {
		t.Error("ParseTheme(neon) should fail")
	}
}

func TestThemeAt(t *testing.T) {
	for _, th := range []Theme{ThemeGrayscale, ThemeFire, ThemeWater} {
		if got := th.At(0); got != black {
			t.Errorf("%s.At(0) = %v, want black", th.Name, got)
		}
	}

	if got := ThemeGrayscale.At(200); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("grayscale.At(200) = %v", got)
	}
	if got := ThemeFire.At(1); got != red {
		t.Errorf("fire.At(1) = %v, want first stop %v", got, red)
	}
	if got := ThemeFire.At(255); got != yellow {
		t.Errorf("fire.At(255) = %v, want last stop %v", got, yellow)
	}
	if got := ThemeFire.At(128); got != orange {
		t.Errorf("fire.At(128) = %v, want middle stop %v", got, orange)
	}
}

func TestThemePalette(t *testing.T) {
	p := ThemeWater.Palette()
	if len(p) != 256 {
		t.Fatalf("palette has %d entries, want 256", len(p))
	}
	if p[0] != color.Color(black) {
		t.Errorf("palette[0] = %v, want black", p[0])
	}
	if p[255] != color.Color(white) {
		t.Errorf("palette[255] = %v, want white", p[255])
	}
}

func TestThemeImageSharesPixels(t *testing.T) {
	buf := fractal.Buffer{Width: 2, Height: 2, Pix: []byte{0, 64, 128, 255}}

	gray, ok := ThemeGrayscale.Image(buf).(*image.Gray)
	if !ok {
		t.Fatalf("grayscale image is %T, want *image.Gray", ThemeGrayscale.Image(buf))
	}
	if gray.GrayAt(1, 1).Y != 255 {
		t.Errorf("gray (1,1) = %d, want 255", gray.GrayAt(1, 1).Y)
	}

	pal, ok := ThemeFire.Image(buf).(*image.Paletted)
	if !ok {
		t.Fatalf("fire image is %T, want *image.Paletted", ThemeFire.Image(buf))
	}
	if pal.ColorIndexAt(1, 0) != 64 {
		t.Errorf("paletted index (1,0) = %d, want 64", pal.ColorIndexAt(1, 0))
	}
	buf.Pix[1] = 7
	if pal.ColorIndexAt(1, 0) != 7 {
		t.Error("paletted image does not share the buffer")
	}
}
