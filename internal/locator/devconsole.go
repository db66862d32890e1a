package locator

import (
	"context"
	"os"

	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// DetectDeveloperConsole returns the Visual Studio installation named by
// VSINSTALLDIR, or nil when the variable is unset, points nowhere, or the
// provider does not recognize the directory. It never fails.
func DetectDeveloperConsole(ctx context.Context, res *Resolution) *vsinstance.Instance {
	log := logging.FromContext(ctx)

	installDir := res.Getenv(EnvVSInstallDir)
	if installDir == "" {
		return nil
	}
	if _, err := os.Stat(installDir); err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "locator").
			Str("strategy", StrategyDevConsole).
			Str("vs_install_dir", installDir).
			Msg("VSINSTALLDIR does not exist")
		return nil
	}

	inst, err := res.Provider.GetInstanceForPath(ctx, installDir)
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "locator").
			Str("strategy", StrategyDevConsole).
			Str("vs_install_dir", installDir).
			Err(err).
			Msg("could not resolve Visual Studio instance")
		return nil
	}
	return inst
}

type devConsoleResolver struct{}

// DeveloperConsoleResolver uses the Visual Studio instance of the active
// developer command prompt. Under .NET Core the console is still probed but
// never selected, leaving the decision to the dotnet resolver.
func DeveloperConsoleResolver() Resolver { return devConsoleResolver{} }

func (devConsoleResolver) Name() string { return StrategyDevConsole }

func (devConsoleResolver) Attempt(ctx context.Context, res *Resolution) Attempt {
	inst := DetectDeveloperConsole(ctx, res)
	if inst == nil {
		return notApplicable()
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "locator").
		Str("strategy", StrategyDevConsole).
		Str("instance", inst.InstallationPath).
		Stringer("version", inst.Version).
		Bool("managed_runtime", res.ManagedRuntime).
		Msg("detected Visual Studio developer console")

	if res.ManagedRuntime {
		return notApplicable()
	}

	return matched(&Result{
		Instance: inst,
		BinPath:  MSBuildBinPath(*inst),
		Strategy: StrategyDevConsole,
	})
}
