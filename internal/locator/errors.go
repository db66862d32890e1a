// Package locator finds the MSBuild installation SlnGen should load, trying an
// explicit CoreXT override, the active Visual Studio developer console, and the
// .NET SDK reported by dotnet --info.
package locator

import "errors"

// Resolution failures. Their messages are shown to the user verbatim.
//
//nolint:staticcheck // Messages are user-facing sentences.
var (
	// ErrCoreXTNetCore indicates an override was declared while running on .NET Core.
	ErrCoreXTNetCore = errors.New(
		"The .NET Core version of SlnGen is not supported in CoreXT.  " +
			"You must use the .NET Framework version via the SlnGen.Corext package")

	// ErrCoreXTVersionRequired indicates VisualStudioVersion is missing or unparseable.
	ErrCoreXTVersionRequired = errors.New("The VisualStudioVersion environment variable must be set in CoreXT")

	// ErrCoreXTVersionTooOld indicates VisualStudioVersion names a pre-15 toolset.
	ErrCoreXTVersionTooOld = errors.New("MSBuild.Corext version 15.0 or greater is required")

	// ErrDotnetNotFound indicates dotnet could not be run or did not report a base path.
	ErrDotnetNotFound = errors.New("Failed to find .NET Core.  Run dotnet --info for more information.")

	// ErrDeveloperConsoleRequired indicates no strategy found an installation.
	ErrDeveloperConsoleRequired = errors.New("You must run SlnGen in a Visual Studio Developer Command Prompt")
)

// DotnetError reports the diagnostic dotnet printed on its error stream.
type DotnetError struct {
	Detail string
}

func (e *DotnetError) Error() string {
	return "Failed to find .NET Core: " + e.Detail
}

// Unwrap lets errors.Is match ErrDotnetNotFound.
func (e *DotnetError) Unwrap() error {
	return ErrDotnetNotFound
}
