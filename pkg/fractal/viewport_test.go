package fractal

import (
	"math"
	"testing"
)

func TestPixelToPoint(t *testing.T) {
	got := PixelToPoint(25, 75, 100, 100, complex(-1, 1), complex(1, -1))
	if want := complex(-0.5, -0.5); got != want {
		t.Errorf("PixelToPoint(25, 75) = %v, want %v", got, want)
	}
}

func TestViewportUpperLeftIsExact(t *testing.T) {
	for _, m := range []Mapping{MapInclusive, MapExclusive} {
		for _, size := range [][2]int{{1, 1}, {3, 3}, {640, 480}, {7, 1}} {
			v := Viewport{
				Width: size[0], Height: size[1],
				UpperLeft:  complex(-2.25, 1.5),
				LowerRight: complex(0.75, -1.5),
				Mapping:    m,
			}
			if got := v.Point(0, 0); got != v.UpperLeft {
				t.Errorf("%v %dx%d: Point(0, 0) = %v, want %v", m, size[0], size[1], got, v.UpperLeft)
			}
		}
	}
}

func TestViewportLowerRightWithinOneStep(t *testing.T) {
	for _, m := range []Mapping{MapInclusive, MapExclusive} {
		v := Viewport{
			Width: 640, Height: 480,
			UpperLeft:  complex(-2, 1.2),
			LowerRight: complex(0.6, -1.2),
			Mapping:    m,
		}
		got := v.Point(v.Width-1, v.Height-1)
		stepRe := (real(v.LowerRight) - real(v.UpperLeft)) / float64(v.Width)
		stepIm := (imag(v.UpperLeft) - imag(v.LowerRight)) / float64(v.Height)

		if d := math.Abs(real(got) - real(v.LowerRight)); d > stepRe+1e-12 {
			t.Errorf("%v: real distance to lower-right = %g, want <= %g", m, d, stepRe)
		}
		if d := math.Abs(imag(got) - imag(v.LowerRight)); d > stepIm+1e-12 {
			t.Errorf("%v: imag distance to lower-right = %g, want <= %g", m, d, stepIm)
		}
	}
}

func TestViewportInclusiveHitsLowerRight(t *testing.T) {
	v := Viewport{Width: 5, Height: 5, UpperLeft: complex(-2, 2), LowerRight: complex(2, -2)}
	if got := v.Point(4, 4); got != v.LowerRight {
		t.Errorf("Point(4, 4) = %v, want %v", got, v.LowerRight)
	}
	if got := v.Point(2, 2); got != 0 {
		t.Errorf("Point(2, 2) = %v, want 0", got)
	}
}

func TestViewportCentreOfThreeByThree(t *testing.T) {
	v := Viewport{Width: 3, Height: 3, UpperLeft: complex(-2, 2), LowerRight: complex(2, -2)}
	if got := v.Point(1, 1); got != 0 {
		t.Errorf("Point(1, 1) = %v, want 0", got)
	}
}

func TestViewportSinglePixel(t *testing.T) {
	v := Viewport{Width: 1, Height: 1, UpperLeft: complex(0.25, -0.5), LowerRight: complex(1, -1)}
	if got := v.Point(0, 0); got != v.UpperLeft {
		t.Errorf("Point(0, 0) = %v, want %v", got, v.UpperLeft)
	}
	re, im := v.Step()
	if re != 0 || im != 0 {
		t.Errorf("Step() = (%g, %g), want (0, 0)", re, im)
	}
}

func TestViewportImaginaryDecreasesDownward(t *testing.T) {
	v := Viewport{Width: 10, Height: 10, UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)}
	prev := imag(v.Point(0, 0))
	for y := 1; y < v.Height; y++ {
		im := imag(v.Point(0, y))
		if im >= prev {
			t.Fatalf("imag(Point(0, %d)) = %g, want < %g", y, im, prev)
		}
		prev = im
	}
}

func TestViewportPointIsDeterministic(t *testing.T) {
	v := Viewport{Width: 1000, Height: 700, UpperLeft: complex(-0.7435, 0.1325), LowerRight: complex(-0.7420, 0.1310)}
	for _, p := range [][2]int{{0, 0}, {999, 699}, {123, 456}} {
		a, b := v.Point(p[0], p[1]), v.Point(p[0], p[1])
		if math.Float64bits(real(a)) != math.Float64bits(real(b)) || math.Float64bits(imag(a)) != math.Float64bits(imag(b)) {
			t.Errorf("Point(%d, %d) not bit-identical: %v vs %v", p[0], p[1], a, b)
		}
	}
}

func TestViewportOriented(t *testing.T) {
	if !(Viewport{UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)}).Oriented() {
		t.Error("standard corners should be oriented")
	}
	if (Viewport{UpperLeft: complex(1, -1), LowerRight: complex(-1, 1)}).Oriented() {
		t.Error("swapped corners should not be oriented")
	}
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		in      string
		want    Mapping
		wantErr bool
	}{
		{"", MapInclusive, false},
		{"inclusive", MapInclusive, false},
		{"exclusive", MapExclusive, false},
		{"Inclusive", 0, true},
		{"centre", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMapping(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMapping(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseMapping(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if err == nil && got.String() == "" {
			t.Errorf("Mapping(%d).String() is empty", got)
		}
	}
}
