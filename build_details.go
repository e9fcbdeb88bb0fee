package oasmerge

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during build.
	// For development builds, this will show "dev"
	version = "dev"
	// commit is the git short hash of the build, set via ldflags
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// BuildInfo returns a human-readable summary of the build metadata
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", version, commit, runtime.Version())
}
