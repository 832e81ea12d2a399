// Package version holds build metadata injected through ldflags.
package version

import "fmt"

var (
	// Version is the release version. Overridden via -ldflags "-X".
	Version = "dev"
	// Commit is the short git SHA embedded at build time.
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
