package locator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// Environment variables read during resolution.
const (
	EnvMSBuildToolset         = "MSBuildToolset"
	EnvMSBuildToolsPathPrefix = "MSBuildToolsPath_"
	EnvVisualStudioVersion    = "VisualStudioVersion"
	EnvVSInstallDir           = "VSINSTALLDIR"
)

// Strategy names reported in Result.Strategy.
const (
	StrategyOverride   = "override"
	StrategyDevConsole = "devconsole"
	StrategyDotnet     = "dotnet"
)

// Outcome tags the result of a single resolver attempt.
type Outcome int

const (
	// OutcomeNotApplicable means the resolver's preconditions did not hold; try the next one.
	OutcomeNotApplicable Outcome = iota
	// OutcomeMatched means the resolver produced a definitive result.
	OutcomeMatched
	// OutcomeHardError aborts resolution.
	OutcomeHardError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeMatched:
		return "matched"
	case OutcomeHardError:
		return "hard_error"
	default:
		return "unknown"
	}
}

// Attempt is what a Resolver returns. Result is set for OutcomeMatched and Err
// for OutcomeHardError.
type Attempt struct {
	Outcome Outcome
	Result  *Result
	Err     error
}

func notApplicable() Attempt { return Attempt{Outcome: OutcomeNotApplicable} }

func matched(r *Result) Attempt { return Attempt{Outcome: OutcomeMatched, Result: r} }

func hardError(err error) Attempt { return Attempt{Outcome: OutcomeHardError, Err: err} }

// Resolver is one step of the cascade.
type Resolver interface {
	Name() string
	Attempt(ctx context.Context, res *Resolution) Attempt
}

// Resolution carries the inputs of a single Locate call to each resolver.
type Resolution struct {
	LookupEnv      func(key string) (string, bool)
	ManagedRuntime bool
	Provider       vsinstance.Provider
}

// Getenv returns the trimmed value of key, or "" when unset.
func (r *Resolution) Getenv(key string) string {
	if r.LookupEnv == nil {
		return ""
	}
	v, ok := r.LookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Result is a successful resolution.
type Result struct {
	// Instance is the Visual Studio installation used, if any. It is always nil
	// for the dotnet strategy.
	Instance *vsinstance.Instance `json:"instance,omitempty"`

	// BinPath is the directory containing MSBuild. Never empty.
	BinPath string `json:"binPath"`

	// Strategy names the resolver that produced the result.
	Strategy string `json:"strategy"`

	// OverrideActive is set when a CoreXT toolset override was honored.
	OverrideActive bool `json:"overrideActive"`

	// ManagedRuntime records whether resolution ran for the .NET Core build.
	ManagedRuntime bool `json:"managedRuntime"`
}

// MSBuildBinPath returns the MSBuild bin directory inside a Visual Studio
// installation. Visual Studio 2019 (16.x) and later use "Current"; 2017 uses "15.0".
func MSBuildBinPath(inst vsinstance.Instance) string {
	toolsVersion := "15.0"
	if inst.Version.Major() >= 16 {
		toolsVersion = "Current"
	}
	return filepath.Join(inst.InstallationPath, "MSBuild", toolsVersion, "Bin")
}
