package fractal

import (
	"fmt"
)

// RowRange is a half-open range [Start, End) of image rows.
type RowRange struct {
	Start, End int
}

// Rows returns the number of rows in the range.
func (r RowRange) Rows() int { return r.End - r.Start }

// Band is a contiguous range of rows together with the part of the pixel
// buffer that holds them. A band's Pix is owned by exactly one worker for the
// duration of a render.
type Band struct {
	Index int
	RowRange
	Pix []byte
}

// RowRanges splits [0, height) into min(height, workers) contiguous ranges
// whose sizes differ by at most one row. The first height%n ranges carry the
// extra row. It returns nil when height or workers is not positive.
func RowRanges(height, workers int) []RowRange {
	if height <= 0 || workers <= 0 {
		return nil
	}
	n := min(height, workers)
	base, extra := height/n, height%n

	ranges := make([]RowRange, n)
	start := 0
	for i := range ranges {
		rows := base
		if i < extra {
			rows++
		}
		ranges[i] = RowRange{Start: start, End: start + rows}
		start += rows
	}
	return ranges
}

// Partition splits a width×height row-major buffer into disjoint bands, one
// per worker (fewer when height < workers). Each band's Pix is a sub-slice of
// buf whose capacity ends at the band's last row, so writes through one band
// can never reach a neighbouring band.
func Partition(buf []byte, width, height, workers int) ([]Band, error) {
	switch {
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("partition %dx%d: dimensions must be positive", width, height)
	case workers <= 0:
		return nil, fmt.Errorf("partition: worker count must be positive, got %d", workers)
	case len(buf) != width*height:
		return nil, fmt.Errorf("partition: buffer has %d bytes, want %d", len(buf), width*height)
	}

	ranges := RowRanges(height, workers)
	bands := make([]Band, len(ranges))
	for i, r := range ranges {
		lo, hi := r.Start*width, r.End*width
		bands[i] = Band{Index: i, RowRange: r, Pix: buf[lo:hi:hi]}
	}
	return bands, nil
}
