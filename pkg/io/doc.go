// Package io encodes rendered fractal buffers to image files and reads the
// lossless formats back.
//
// # Formats
//
// The output format is usually picked from the file extension with
// [FormatFromPath]:
//
//   - png, jpg, gif: standard raster images, optionally colored by a [Theme]
//   - bmp, tiff: uncompressed and deflate-compressed rasters
//   - pgm: binary netpbm graymap (P5), the raw bytes with a text header
//   - zst: the raw buffer with a small binary header, zstd-compressed
//
// The pgm and zst formats are lossless and can be read back with [ReadPGM]
// and [ReadZst]. The zst form is also what the render cache stores.
//
// # Themes
//
// A buffer holds one gray byte per pixel. Themes map those bytes to colors
// when an image is encoded; the buffer itself is never modified. Byte 0
// (points inside the set) is always black:
//
//	err := io.Export(buf, "out.png", io.FormatPNG, io.WithTheme(io.ThemeFire))
//
// # Concurrency
//
// All functions are safe for concurrent use. The zstd encoders and decoders
// are pooled internally.
package io
