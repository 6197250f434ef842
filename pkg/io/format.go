package io

import (
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/mandel/pkg/errors"
)

// Format identifies an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPGM  Format = "pgm"
	FormatZst  Format = "zst"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF, FormatPGM, FormatZst}

var formatAliases = map[string]Format{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"pgm":  FormatPGM,
	"zst":  FormatZst,
}

var contentTypes = map[Format]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatGIF:  "image/gif",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
	FormatPGM:  "image/x-portable-graymap",
	FormatZst:  "application/zstd",
}

// ParseFormat parses a format name. Matching is case-insensitive and accepts
// the usual aliases (jpeg, tif).
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (supported: %s)", s, formatList())
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Lossless reports whether ReadFile can recover the buffer from f.
func (f Format) Lossless() bool {
	return f == FormatPGM || f == FormatZst
}

// Themed reports whether f honours WithTheme.
func (f Format) Themed() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
