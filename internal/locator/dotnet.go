package locator

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/internal/process"
)

// DefaultDotnetTimeout bounds dotnet --info. The command is expected to finish
// almost instantly; a hang usually means first-run setup or a broken install.
const DefaultDotnetTimeout = 2 * time.Second

// DefaultDotnetCommand is run when no dotnet path is configured.
const DefaultDotnetCommand = "dotnet"

// dotnetEnv keeps dotnet --info fast and its output stable.
// https://learn.microsoft.com/dotnet/core/tools/dotnet-environment-variables
var dotnetEnv = []string{ //nolint:gochecknoglobals // Fixed child environment
	"DOTNET_CLI_TELEMETRY_OPTOUT=1",
	"DOTNET_CLI_UI_LANGUAGE=en-US",
	"DOTNET_MULTILEVEL_LOOKUP=0",
	"DOTNET_NOLOGO=1",
	"COREHOST_TRACE=0",
}

var basePathRegex = regexp.MustCompile(`^\s+Base Path:\s+(?P<path>.*)$`)

// DotnetProbe finds the active .NET SDK directory by parsing dotnet --info.
type DotnetProbe struct {
	Command string         // Executable (default: dotnet).
	Timeout time.Duration  // Default: DefaultDotnetTimeout.
	Runner  process.Runner // Default: process.ExecRunner.
}

// NewDotnetProbe returns a probe running command, or "dotnet" when empty.
func NewDotnetProbe(command string) *DotnetProbe {
	return &DotnetProbe{Command: command}
}

// BasePath runs dotnet --info and returns the SDK base path it reports.
// It returns ErrDotnetNotFound when dotnet cannot be started, does not finish
// in time, or reports no base path, and a *DotnetError when dotnet writes to
// its error stream.
func (p *DotnetProbe) BasePath(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	command := p.Command
	if command == "" {
		command = DefaultDotnetCommand
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultDotnetTimeout
	}
	runner := p.Runner
	if runner == nil {
		runner = process.ExecRunner{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().
		Ctx(ctx).
		Str("component", "locator").
		Str("strategy", StrategyDotnet).
		Str("command", command).
		Msg("running dotnet --info")

	stdout, stderr, err := runner.Run(ctx, process.Command{
		Name:       command,
		Args:       []string{"--info"},
		Env:        dotnetEnv,
		HideWindow: true,
	})
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			log.Debug().
				Ctx(ctx).
				Str("component", "locator").
				Str("strategy", StrategyDotnet).
				Dur("timeout", timeout).
				Msg("dotnet --info timed out")
			return "", ErrDotnetNotFound
		case errors.Is(ctx.Err(), context.Canceled):
			return "", ctx.Err()
		case !process.IsExitError(err):
			log.Debug().
				Ctx(ctx).
				Str("component", "locator").
				Str("strategy", StrategyDotnet).
				Err(err).
				Msg("could not start dotnet")
			return "", ErrDotnetNotFound
		}
		// A non-zero exit still leaves output worth inspecting.
	}

	if line := strings.TrimSpace(process.FirstLine(stderr)); line != "" {
		return "", &DotnetError{Detail: line}
	}

	if path, ok := ParseBasePath(stdout); ok {
		return path, nil
	}
	return "", ErrDotnetNotFound
}

// ParseBasePath scans dotnet --info output for the first non-empty
// "Base Path:" entry. Scanning stops at the first match.
func ParseBasePath(output []byte) (string, bool) {
	idx := basePathRegex.SubexpIndex("path")
	for line := range process.Lines(output) {
		m := basePathRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if path := strings.TrimSpace(m[idx]); path != "" {
			return path, true
		}
	}
	return "", false
}

type dotnetResolver struct {
	probe *DotnetProbe
}

// DotnetResolver resolves MSBuild to the .NET SDK directory when running on
// .NET Core. Any failure is final since no other strategy applies there.
func DotnetResolver(probe *DotnetProbe) Resolver {
	if probe == nil {
		probe = NewDotnetProbe("")
	}
	return dotnetResolver{probe: probe}
}

func (dotnetResolver) Name() string { return StrategyDotnet }

func (r dotnetResolver) Attempt(ctx context.Context, res *Resolution) Attempt {
	if !res.ManagedRuntime {
		return notApplicable()
	}

	basePath, err := r.probe.BasePath(ctx)
	if err != nil {
		return hardError(err)
	}

	return matched(&Result{
		BinPath:  basePath,
		Strategy: StrategyDotnet,
	})
}
