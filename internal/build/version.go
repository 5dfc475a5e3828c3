// Package build provides version and build information for whatsnew.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "strings"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
// Dev builds skip update checks entirely.
func IsDevBuild() bool {
	return Version == "dev" || Version == ""
}

// CurrentVersion returns the running version without a "v" prefix, as it
// appears in changelog headings.
func CurrentVersion() string {
	return strings.TrimPrefix(Version, "v")
}
