// Package version provides information about the build version of the tool.
package version

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'asusnumpad/internal/core/version.version=v0.0.1'
	// -X 'asusnumpad/internal/core/version.commit=abcd' -X 'asusnumpad/internal/core/version.date=2026-08-25'"
	return BuildInfo{
		Service: "asusnumpad-setup",
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
