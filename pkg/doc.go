// Package pkg provides the libraries behind the mandel renderer.
//
// # Overview
//
// Mandel renders the Mandelbrot set as an 8-bit grayscale image. The image is
// split into horizontal bands that are computed concurrently and written into
// one shared buffer. The pkg directory is organized as follows:
//
//  1. [fractal] - Core algorithms (viewport mapping, escape time, band partition, fork-join render)
//  2. [params] - Parsing of the textual render arguments
//  3. [io] - Image encoders and themes (png, jpg, gif, bmp, tiff, pgm, zst)
//  4. [pipeline] - Orchestration (validate → cache lookup → render → cache store)
//  5. [cache], [config], [errors], [observability] - Infrastructure
//  6. [server] - HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	"800x600" "-2,1.25" "1,-1.25" "255"
//	         ↓
//	    [params] package (parse + validate)
//	         ↓
//	    [pipeline] package (cache lookup)
//	         ↓
//	    [fractal] package (parallel render)
//	         ↓
//	    [io] package (PNG/PGM/... output)
//
// # Quick Start
//
//	req, err := params.BuildRequest(params.Args{
//	    Size:       "800x600",
//	    UpperLeft:  "-2.5,1.25",
//	    LowerRight: "1,-1.25",
//	    Limit:      "255",
//	})
//	if err != nil {
//	    return err
//	}
//	buf, err := fractal.Render(req)
//	if err != nil {
//	    return err
//	}
//	return io.Export(buf, "mandel.png", io.FormatPNG)
package pkg
