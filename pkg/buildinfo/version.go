// Package buildinfo reports which mandel build is running.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/mandel/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/mandel/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/mandel/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with `go install module@version` carry no ldflags; for those
// the module version recorded by the Go toolchain is used instead.
//
// The version also scopes the render cache, so a new build never serves
// buffers written by an older renderer.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the build information served by the API health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the build information, resolving the version as described in
// the package documentation.
func Get() Info {
	return Info{Version: resolveVersion(), Commit: Commit, Date: Date}
}

func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// CacheScope returns the prefix for render cache keys, e.g.
// "mandel:v1.2.0:" or "mandel:dev+3f2a1bc:". Development builds include the
// short commit when one is known.
func CacheScope() string {
	v := resolveVersion()
	if v == "dev" && Commit != "none" {
		v += "+" + Commit[:min(len(Commit), 7)]
	}
	return "mandel:" + v + ":"
}

// String returns the formatted build information.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
