package io

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
)

// Option configures encoding.
type Option func(*encoder)

type encoder struct {
	theme   Theme
	quality int
}

// WithTheme colors raster formats with t. It has no effect on pgm and zst.
func WithTheme(t Theme) Option {
	return func(e *encoder) { e.theme = t }
}

// WithJPEGQuality sets the JPEG quality (1-100, default 90).
func WithJPEGQuality(q int) Option {
	return func(e *encoder) {
		if q > 0 && q <= 100 {
			e.quality = q
		}
	}
}

// Encode writes buf to w in format f.
func Encode(w io.Writer, buf fractal.Buffer, f Format, opts ...Option) error {
	if buf.Width <= 0 || buf.Height <= 0 || len(buf.Pix) != buf.Width*buf.Height {
		return errs.New(errs.ErrCodeInternal, "buffer of %d bytes does not match %dx%d", len(buf.Pix), buf.Width, buf.Height)
	}
	e := encoder{theme: ThemeGrayscale, quality: 90}
	for _, opt := range opts {
		opt(&e)
	}

	var err error
	switch f {
	case FormatPNG:
		err = imaging.Encode(w, e.theme.Image(buf), imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(w, e.theme.Image(buf), imaging.JPEG, imaging.JPEGQuality(e.quality))
	case FormatGIF:
		err = imaging.Encode(w, e.theme.Image(buf), imaging.GIF)
	case FormatBMP:
		err = bmp.Encode(w, e.theme.Image(buf))
	case FormatTIFF:
		err = tiff.Encode(w, e.theme.Image(buf), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatPGM:
		err = WritePGM(w, buf)
	case FormatZst:
		err = WriteZst(w, buf)
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "encode %s", f)
	}
	return nil
}

// Export writes buf to a file at path.
// This is a convenience wrapper around [Encode] for file-based output.
func Export(buf fractal.Buffer, path string, f Format, opts ...Option) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errs.Wrap(errs.ErrCodeIO, cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriter(file)
	if err := Encode(w, buf, f, opts...); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// WritePGM writes buf as a binary (P5) netpbm graymap.
func WritePGM(w io.Writer, buf fractal.Buffer) error {
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return err
	}
	_, err := w.Write(buf.Pix)
	return err
}

// zstMagic opens every zst file. The version byte follows it.
var zstMagic = [4]byte{'M', 'N', 'D', 'Z'}

const zstVersion = 1

// zstHeader is the fixed-size prefix of a zst file. All integers are big
// endian.
type zstHeader struct {
	Magic   [4]byte
	Version uint8
	Width   uint32
	Height  uint32
}

// WriteZst writes buf as a header followed by the zstd-compressed pixels.
func WriteZst(w io.Writer, buf fractal.Buffer) error {
	h := zstHeader{Magic: zstMagic, Version: zstVersion, Width: uint32(buf.Width), Height: uint32(buf.Height)}
	if err := binary.Write(w, binary.BigEndian, h); err != nil {
		return err
	}
	_, err := w.Write(compress(buf.Pix))
	return err
}

// MarshalZst returns buf in the zst format.
func MarshalZst(buf fractal.Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := WriteZst(&out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
