package version

import "fmt"

// Version is the application version. Release builds stamp it via ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/uibuilder/internal/version.Version=v1.3.0".
var Version = "unknown"

// Build metadata, stamped the same way.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the one-line form shown by --version and stamped into
// build reports.
func String() string {
	return fmt.Sprintf("uibuilder %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
