package params

import (
	"strconv"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
)

// Args holds the raw render arguments. Region, when set, replaces
// UpperLeft and LowerRight.
type Args struct {
	Size       string
	UpperLeft  string
	LowerRight string
	Region     string
	Limit      string
	Workers    int
	Palette    string
	Mapping    string
}

// BuildRequest parses and validates args into a render request.
func BuildRequest(args Args) (fractal.Request, error) {
	var req fractal.Request

	w, h, err := ParseDimensions(args.Size)
	if err != nil {
		return req, err
	}
	req.Width, req.Height = w, h

	if args.Region != "" {
		r, err := fractal.LookupRegion(args.Region)
		if err != nil {
			return req, errs.Wrap(errs.ErrCodeInvalidRegion, err, "region %q", args.Region)
		}
		req.UpperLeft, req.LowerRight = r.UpperLeft, r.LowerRight
	} else {
		if req.UpperLeft, err = ParseComplex(args.UpperLeft); err != nil {
			return req, err
		}
		if req.LowerRight, err = ParseComplex(args.LowerRight); err != nil {
			return req, err
		}
	}

	if req.Limit, err = ParseLimit(args.Limit); err != nil {
		return req, err
	}

	req.Workers = args.Workers
	if req.Palette, err = fractal.ParsePalette(args.Palette); err != nil {
		return req, errs.Wrap(errs.ErrCodeInvalidPalette, err, "palette")
	}
	if req.Mapping, err = fractal.ParseMapping(args.Mapping); err != nil {
		return req, errs.Wrap(errs.ErrCodeInvalidMapping, err, "mapping")
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// FormatComplex renders c in the "RE,IM" form accepted by ParseComplex.
func FormatComplex(c complex128) string {
	return strconv.FormatFloat(real(c), 'g', -1, 64) + "," + strconv.FormatFloat(imag(c), 'g', -1, 64)
}
