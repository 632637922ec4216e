// Package build holds version information stamped in at link time. It has
// no internal dependencies so any package can import it.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// UserAgent identifies provider artifacts in outgoing API requests.
func UserAgent() string {
	return "agentos/" + Version
}
