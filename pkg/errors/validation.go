package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxDimension bounds a single image side. It keeps width*height well inside
// the int range on 32-bit platforms as well.
const MaxDimension = 1 << 15

// ValidateDimensions checks that an image size is usable for rendering.
// Both sides must be positive and no larger than MaxDimension.
func ValidateDimensions(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidDimensions, "height must be positive, got %d", height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "image %dx%d exceeds the maximum side of %d pixels", width, height, MaxDimension)
	}
	return nil
}

// ValidatePixelBudget rejects images with more than maxPixels pixels.
// A non-positive maxPixels disables the check.
func ValidatePixelBudget(width, height, maxPixels int) error {
	if maxPixels <= 0 {
		return nil
	}
	if width*height > maxPixels {
		return New(ErrCodeTooLarge, "image %dx%d has %d pixels (max %d)", width, height, width*height, maxPixels)
	}
	return nil
}

// ValidateWorkers checks an explicit worker count.
// Zero is accepted and means "use the host's parallelism".
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidWorkers, "worker count cannot be negative, got %d", n)
	}
	return nil
}

// ValidatePoint rejects corners that are not finite numbers.
func ValidatePoint(name string, c complex128) error {
	re, im := real(c), imag(c)
	if math.IsNaN(re) || math.IsNaN(im) || math.IsInf(re, 0) || math.IsInf(im, 0) {
		return New(ErrCodeInvalidComplex, "%s corner must be finite, got %v", name, c)
	}
	return nil
}

// ValidateOutputPath validates a local output path for the CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must name a file, not a directory
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}
