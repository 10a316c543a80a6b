// Package version provides information about the build of the chronicler binary.
package version

import "fmt"

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String renders the one-line form printed by --version
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}

// Info returns the build information. version, commit and date are set at build time:
//
//	-ldflags "-X 'github.com/chaoss/grimoirelab-chronicler/internal/core/version.version=v0.1.0'
//	          -X 'github.com/chaoss/grimoirelab-chronicler/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: "chronicler",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
