// Package fractal is the numeric rendering engine for Mandelbrot images.
//
// A render turns a [Request] (image size, two complex corners, an iteration
// limit and a worker count) into a [Buffer] of grayscale bytes, one byte per
// pixel in row-major order.
//
// # Pipeline
//
// Every pixel goes through the same three pure steps:
//
//  1. [Viewport.Point] maps the pixel to a point c on the complex plane
//  2. [Escape] iterates z = z*z + c from z = 0 and reports whether z left the
//     radius-2 disk, and at which iteration
//  3. a [Colorizer] turns that result into a byte (bounded points are black)
//
// Sampling is inclusive by default ([MapInclusive]): the step is the span
// divided by width-1 and height-1, so the first and last pixels of each axis
// land exactly on the two corners. Set [Viewport.Mapping] to [MapExclusive]
// to divide by width and height instead, as [PixelToPoint] does; the
// lower-right corner then lies one step past the last pixel.
//
// # Parallelism
//
// [Render] allocates the output buffer once, splits it with [Partition] into
// contiguous row bands of near-equal height, and starts one goroutine per
// band. Each goroutine writes only into its own sub-slice of the buffer, so no
// locks or atomics are needed; the single join at the end of Render is the
// only synchronization point. Because each pixel depends only on its own
// coordinates, the output is byte-identical for any worker count.
//
// A panic inside a band is recovered and reported as a [*BandError]. Render
// waits for every band before returning, and returns an error instead of a
// partially filled buffer if any band failed.
//
// # Precision
//
// All arithmetic is float64/complex128. Deep zooms lose precision once the
// pixel step approaches the float64 epsilon of the corner coordinates.
package fractal
