// Package version exposes build metadata stamped in via -ldflags.
package version

var (
	version   = "dev"     //nolint:gochecknoglobals // Set via -ldflags at build time
	gitCommit = "unknown" //nolint:gochecknoglobals // Set via -ldflags at build time
	buildDate = "unknown" //nolint:gochecknoglobals // Set via -ldflags at build time
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}
