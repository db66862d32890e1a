package locator

import (
	"context"
	"os"

	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// Options configures a Locator. Zero values select the defaults.
type Options struct {
	// LookupEnv reads the environment (default: os.LookupEnv).
	LookupEnv func(key string) (string, bool)

	// ManagedRuntime is set when SlnGen runs on .NET Core rather than the
	// .NET Framework build that ships alongside Visual Studio.
	ManagedRuntime bool

	// Provider enumerates Visual Studio installations (default: vswhere).
	Provider vsinstance.Provider

	// Dotnet runs dotnet --info (default: NewDotnetProbe("")).
	Dotnet *DotnetProbe

	// Resolvers overrides the cascade (default: DefaultResolvers).
	Resolvers []Resolver
}

// Locator finds MSBuild by trying each resolver in order.
type Locator struct {
	opts Options
}

// New returns a Locator for opts.
func New(opts Options) *Locator {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Provider == nil {
		opts.Provider = vsinstance.NewVSWhere("")
	}
	if opts.Dotnet == nil {
		opts.Dotnet = NewDotnetProbe("")
	}
	if opts.Resolvers == nil {
		opts.Resolvers = DefaultResolvers(opts.Dotnet)
	}
	return &Locator{opts: opts}
}

// DefaultResolvers returns the standard cascade: CoreXT override, developer
// console, then dotnet.
func DefaultResolvers(probe *DotnetProbe) []Resolver {
	return []Resolver{
		OverrideResolver(),
		DeveloperConsoleResolver(),
		DotnetResolver(probe),
	}
}

// Locate runs the cascade. The first resolver that matches or fails decides
// the outcome; if none applies, ErrDeveloperConsoleRequired is returned.
func (l *Locator) Locate(ctx context.Context) (*Result, error) {
	log := logging.FromContext(ctx)

	res := &Resolution{
		LookupEnv:      l.opts.LookupEnv,
		ManagedRuntime: l.opts.ManagedRuntime,
		Provider:       l.opts.Provider,
	}

	for _, r := range l.opts.Resolvers {
		attempt := r.Attempt(ctx, res)

		log.Debug().
			Ctx(ctx).
			Str("component", "locator").
			Str("strategy", r.Name()).
			Stringer("outcome", attempt.Outcome).
			Msg("strategy attempted")

		switch attempt.Outcome {
		case OutcomeMatched:
			result := attempt.Result
			result.ManagedRuntime = res.ManagedRuntime
			log.Info().
				Ctx(ctx).
				Str("component", "locator").
				Str("strategy", result.Strategy).
				Str("bin_path", result.BinPath).
				Bool("override_active", result.OverrideActive).
				Msg("located MSBuild")
			return result, nil
		case OutcomeHardError:
			return nil, attempt.Err
		case OutcomeNotApplicable:
		}
	}

	return nil, ErrDeveloperConsoleRequired
}

// TryLocate runs Locate and reports a failure through report, exactly once.
// Success is silent.
func (l *Locator) TryLocate(ctx context.Context, report func(message string)) (*Result, bool) {
	result, err := l.Locate(ctx)
	if err != nil {
		if report != nil {
			report(err.Error())
		}
		return nil, false
	}
	return result, true
}
