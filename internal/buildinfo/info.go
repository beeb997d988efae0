package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/cchawn/toolbox/internal/buildinfo.Version=..."
// when building any of the cmd/ binaries.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
