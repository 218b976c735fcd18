// Package version exposes build information injected at link time.
package version

// Set with -ldflags "-X github.com/cultivar-dev/cultivar/pkg/version.version=...".
//
//nolint:gochecknoglobals // Link-time variables.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}

// Full returns the version with the commit appended when known.
func Full() string {
	if gitCommit == "" {
		return version
	}
	return version + " (" + gitCommit + ")"
}
