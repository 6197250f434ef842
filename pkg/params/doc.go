// Package params parses the textual render arguments shared by the CLI and
// the HTTP API.
//
// Every value is parsed and validated before a [fractal.Request] is built,
// so a malformed argument never starts a render:
//
//	size, _ := params.ParseDimensions("1000x750")
//	ul, _ := params.ParseComplex("-1.20,0.35")
//
// [BuildRequest] combines all pieces and reports the first problem as a
// structured error from pkg/errors.
package params
