package fractal

import (
	"fmt"
	"sort"
)

// Region is a named rectangle of the complex plane.
type Region struct {
	Name        string
	Description string
	UpperLeft   complex128
	LowerRight  complex128
}

// Classic regions / landmarks in the Mandelbrot set.
var regions = map[string]Region{
	"full": {
		Name:        "full",
		Description: "the whole set",
		UpperLeft:   complex(-2.5, 1.25),
		LowerRight:  complex(1.0, -1.25),
	},
	"seahorse": {
		Name:        "seahorse",
		Description: "Seahorse Valley, dense filaments and repeating curls",
		UpperLeft:   complex(-0.8, 0.15),
		LowerRight:  complex(-0.7, 0.05),
	},
	"elephant": {
		Name:        "elephant",
		Description: "Elephant Valley, large bulb with trunk-like tendrils",
		UpperLeft:   complex(0.25, 0.1),
		LowerRight:  complex(0.35, 0.0),
	},
	"spiral": {
		Name:        "spiral",
		Description: "small Mandelbrot copy with tight spiral arms",
		UpperLeft:   complex(-0.7435, 0.1325),
		LowerRight:  complex(-0.7420, 0.1310),
	},
	"triple-spiral": {
		Name:        "triple-spiral",
		Description: "threefold symmetric spiral structure",
		UpperLeft:   complex(-0.7480, 0.0980),
		LowerRight:  complex(-0.7450, 0.0950),
	},
	"dragon": {
		Name:        "dragon",
		Description: "Valley of the Dragon, deep spiral filaments",
		UpperLeft:   complex(-0.7400, 0.1850),
		LowerRight:  complex(-0.7350, 0.1800),
	},
	"antenna": {
		Name:        "antenna",
		Description: "minibrot on the needle of the real axis",
		UpperLeft:   complex(-1.7890, 0.0100),
		LowerRight:  complex(-1.7490, -0.0100),
	},
}

// LookupRegion returns the named region.
func LookupRegion(name string) (Region, error) {
	r, ok := regions[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %v)", name, RegionNames())
	}
	return r, nil
}

// RegionNames returns the sorted names of the built-in regions.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
