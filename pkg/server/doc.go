// Package server exposes the renderer over HTTP.
//
// # Endpoints
//
//	GET /api/v1/render   render an image, see below
//	GET /api/v1/regions  list the named regions
//	GET /api/v1/stats    render, cache and request counters
//	GET /api/v1/healthz  liveness probe
//
// The render endpoint takes the same arguments as `mandel render`, as query
// parameters:
//
//	/api/v1/render?size=800x600&ul=-1.2,0.35&lr=-1,0.2&limit=255
//	/api/v1/render?size=800x600&region=seahorse&theme=fire&format=jpg
//
// Optional parameters are workers, palette, mapping, theme, format (png by
// default) and region, which replaces ul and lr. The response carries the
// encoded image with X-Cache (hit or miss) and X-Request-ID headers.
//
// # Errors
//
// Errors are JSON objects:
//
//	{"code": "INVALID_DIMENSIONS", "message": "...", "request_id": "..."}
//
// Validation errors map to 400, images over the pixel budget to 413, and
// render failures to 500.
package server
