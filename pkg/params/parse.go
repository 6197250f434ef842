package params

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/mandel/pkg/errors"
)

// Number is the set of element types ParsePair understands.
type Number interface {
	~int | ~uint32 | ~float64
}

// ParsePair parses s as two values separated by sep, e.g. "400x600" with
// sep 'x' or "1.0,0.5" with sep ','. The string is split at the first
// occurrence of sep and both halves must parse in full.
func ParsePair[T Number](s string, sep byte) (T, T, bool) {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return 0, 0, false
	}
	l, ok := parseNumber[T](s[:i])
	if !ok {
		return 0, 0, false
	}
	r, ok := parseNumber[T](s[i+1:])
	if !ok {
		return 0, 0, false
	}
	return l, r, true
}

func parseNumber[T Number](s string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		v, err := strconv.Atoi(s)
		return T(v), err == nil
	case uint32:
		v, err := strconv.ParseUint(s, 10, 32)
		return T(v), err == nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		return T(v), err == nil
	}
}

// ParseComplex parses "RE,IM" into a complex number.
func ParseComplex(s string) (complex128, error) {
	re, im, ok := ParsePair[float64](s, ',')
	if !ok {
		return 0, errs.New(errs.ErrCodeInvalidComplex, "invalid complex number %q (want RE,IM)", s)
	}
	c := complex(re, im)
	if err := errs.ValidatePoint("point", c); err != nil {
		return 0, err
	}
	return c, nil
}

// ParseDimensions parses "WIDTHxHEIGHT". Both sides must be positive.
func ParseDimensions(s string) (width, height int, err error) {
	width, height, ok := ParsePair[int](s, 'x')
	if !ok {
		return 0, 0, errs.New(errs.ErrCodeInvalidDimensions, "invalid image size %q (want WIDTHxHEIGHT)", s)
	}
	if err := errs.ValidateDimensions(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// ParseLimit parses an iteration limit. Zero is accepted.
func ParseLimit(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidLimit, "invalid iteration limit %q (want a non-negative integer)", s)
	}
	return uint32(v), nil
}
