// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/coin-ingest/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/coin-ingest/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	         ./cmd/ingester
package version

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + Commit + ")"
}
