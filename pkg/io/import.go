package io

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
)

// ReadZst decodes a buffer written by WriteZst. It does not close r.
func ReadZst(r io.Reader) (fractal.Buffer, error) {
	var h zstHeader
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return fractal.Buffer{}, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != zstMagic {
		return fractal.Buffer{}, fmt.Errorf("not a zst buffer (magic %q)", h.Magic[:])
	}
	if h.Version != zstVersion {
		return fractal.Buffer{}, fmt.Errorf("unsupported zst version %d", h.Version)
	}
	w, ht := int(h.Width), int(h.Height)
	if err := errs.ValidateDimensions(w, ht); err != nil {
		return fractal.Buffer{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fractal.Buffer{}, fmt.Errorf("read pixels: %w", err)
	}
	pix, err := decompress(data, w*ht)
	if err != nil {
		return fractal.Buffer{}, fmt.Errorf("decompress: %w", err)
	}
	if len(pix) != w*ht {
		return fractal.Buffer{}, fmt.Errorf("zst buffer has %d pixels, want %d", len(pix), w*ht)
	}
	return fractal.Buffer{Width: w, Height: ht, Pix: pix}, nil
}

// UnmarshalZst decodes a buffer produced by MarshalZst.
func UnmarshalZst(data []byte) (fractal.Buffer, error) {
	return ReadZst(bytes.NewReader(data))
}

// ReadPGM decodes a binary (P5) graymap with a maximum value of 255.
// Header comments are not supported.
func ReadPGM(r io.Reader) (fractal.Buffer, error) {
	br := bufio.NewReader(r)

	var magic string
	var w, h, maxval int
	if _, err := fmt.Fscan(br, &magic, &w, &h, &maxval); err != nil {
		return fractal.Buffer{}, fmt.Errorf("read header: %w", err)
	}
	if magic != "P5" {
		return fractal.Buffer{}, fmt.Errorf("not a binary graymap (magic %q)", magic)
	}
	if maxval != 255 {
		return fractal.Buffer{}, fmt.Errorf("unsupported maxval %d", maxval)
	}
	if err := errs.ValidateDimensions(w, h); err != nil {
		return fractal.Buffer{}, err
	}
	// A single whitespace byte separates the header from the raster.
	if _, err := br.ReadByte(); err != nil {
		return fractal.Buffer{}, fmt.Errorf("read header: %w", err)
	}

	pix := make([]byte, w*h)
	if _, err := io.ReadFull(br, pix); err != nil {
		return fractal.Buffer{}, fmt.Errorf("read pixels: %w", err)
	}
	return fractal.Buffer{Width: w, Height: h, Pix: pix}, nil
}

// ReadFile reads a buffer from a pgm or zst file.
func ReadFile(path string) (fractal.Buffer, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return fractal.Buffer{}, err
	}
	if !f.Lossless() {
		return fractal.Buffer{}, errs.New(errs.ErrCodeUnsupported, "cannot read %s files", f)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fractal.Buffer{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return fractal.Buffer{}, errs.Wrap(errs.ErrCodeIO, err, "open %s", path)
	}
	defer file.Close()

	var buf fractal.Buffer
	if f == FormatZst {
		buf, err = ReadZst(file)
	} else {
		buf, err = ReadPGM(file)
	}
	if err != nil {
		return fractal.Buffer{}, errs.Wrap(errs.ErrCodeIO, err, "read %s", path)
	}
	return buf, nil
}
