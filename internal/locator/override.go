package locator

import (
	"context"

	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// minimumCoreXTMajor is the first Visual Studio major version CoreXT builds support.
const minimumCoreXTMajor = 15

type overrideResolver struct{}

// OverrideResolver honors a CoreXT toolset redirection declared through
// MSBuildToolset and MSBuildToolsPath_<toolset>. Once both are set the override
// is authoritative: configuration problems fail resolution instead of falling
// through to the other strategies.
func OverrideResolver() Resolver { return overrideResolver{} }

func (overrideResolver) Name() string { return StrategyOverride }

func (overrideResolver) Attempt(ctx context.Context, res *Resolution) Attempt {
	log := logging.FromContext(ctx)

	toolset := res.Getenv(EnvMSBuildToolset)
	if toolset == "" {
		return notApplicable()
	}

	toolsPathVar := EnvMSBuildToolsPathPrefix + toolset
	toolsPath := res.Getenv(toolsPathVar)
	if toolsPath == "" {
		log.Debug().
			Ctx(ctx).
			Str("component", "locator").
			Str("strategy", StrategyOverride).
			Str("toolset", toolset).
			Msgf("%s is not set, ignoring toolset override", toolsPathVar)
		return notApplicable()
	}

	if res.ManagedRuntime {
		return hardError(ErrCoreXTNetCore)
	}

	vsVersion, err := vsinstance.ParseVersion(res.Getenv(EnvVisualStudioVersion))
	if err != nil {
		return hardError(ErrCoreXTVersionRequired)
	}
	if vsVersion.Major() < minimumCoreXTMajor {
		return hardError(ErrCoreXTVersionTooOld)
	}

	// A missing instance is tolerated here; the override path alone is enough
	// to load MSBuild.
	var selected *vsinstance.Instance
	instances, err := res.Provider.GetLaunchableInstances(ctx)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "locator").
			Str("strategy", StrategyOverride).
			Err(err).
			Msg("could not enumerate Visual Studio instances")
	} else {
		selected = SelectInstance(instances, vsVersion.Major())
	}

	event := log.Debug().
		Ctx(ctx).
		Str("component", "locator").
		Str("strategy", StrategyOverride).
		Str("toolset", toolset).
		Str("bin_path", toolsPath).
		Stringer("visual_studio_version", vsVersion)
	if selected != nil {
		event = event.Str("instance", selected.InstallationPath)
	}
	event.Msg("using CoreXT toolset override")

	return matched(&Result{
		Instance:       selected,
		BinPath:        toolsPath,
		Strategy:       StrategyOverride,
		OverrideActive: true,
	})
}
