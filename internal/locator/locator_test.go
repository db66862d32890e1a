package locator

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnarthur1/slngen/internal/vsinstance"
)

func TestLocate_NothingFound(t *testing.T) {
	provider := &fakeProvider{}
	mock := &mockRunner{stdout: []byte(dotnetInfoOutput)}
	l := New(Options{
		LookupEnv: envMap(map[string]string{}),
		Provider:  provider,
		Dotnet:    &DotnetProbe{Runner: mock},
	})

	result, err := l.Locate(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDeveloperConsoleRequired)
	assert.Equal(t, "You must run SlnGen in a Visual Studio Developer Command Prompt", err.Error())
	assert.Zero(t, mock.calls, "dotnet must not run for the .NET Framework build")
}

func TestTryLocate_ReportsOnce(t *testing.T) {
	l := New(Options{
		LookupEnv: envMap(map[string]string{}),
		Provider:  &fakeProvider{},
	})

	var messages []string
	result, ok := l.TryLocate(context.Background(), func(msg string) { messages = append(messages, msg) })

	assert.False(t, ok)
	assert.Nil(t, result)
	assert.Equal(t, []string{"You must run SlnGen in a Visual Studio Developer Command Prompt"}, messages)
}

func TestTryLocate_SuccessIsSilent(t *testing.T) {
	root := t.TempDir()
	inst := instance("ent", root, "17.4.1", true, false)
	l := New(Options{
		LookupEnv: envMap(map[string]string{EnvVSInstallDir: root}),
		Provider:  &fakeProvider{byPath: map[string]*vsinstance.Instance{root: &inst}},
	})

	reported := 0
	result, ok := l.TryLocate(context.Background(), func(string) { reported++ })

	require.True(t, ok)
	assert.Zero(t, reported)
	assert.Equal(t, filepath.Join(root, "MSBuild", "Current", "Bin"), result.BinPath)
}

func TestTryLocate_NilReporter(t *testing.T) {
	l := New(Options{LookupEnv: envMap(nil), Provider: &fakeProvider{}})

	_, ok := l.TryLocate(context.Background(), nil)
	assert.False(t, ok)
}

func TestLocate_DeveloperConsole(t *testing.T) {
	root := t.TempDir()
	inst := instance("vs2017", root, "15.9.28307.1500", true, false)
	l := New(Options{
		LookupEnv: envMap(map[string]string{EnvVSInstallDir: root}),
		Provider:  &fakeProvider{byPath: map[string]*vsinstance.Instance{root: &inst}},
	})

	result, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StrategyDevConsole, result.Strategy)
	assert.Equal(t, filepath.Join(root, "MSBuild", "15.0", "Bin"), result.BinPath)
	require.NotNil(t, result.Instance)
	assert.Equal(t, "vs2017", result.Instance.InstanceID)
	assert.False(t, result.OverrideActive)
	assert.False(t, result.ManagedRuntime)
}

func TestLocate_OverrideWinsOverConsole(t *testing.T) {
	root := t.TempDir()
	inst := instance("ent", root, "17.4.1", true, false)
	provider := &fakeProvider{
		instances: []vsinstance.Instance{inst},
		byPath:    map[string]*vsinstance.Instance{root: &inst},
	}
	l := New(Options{
		LookupEnv: envMap(map[string]string{
			EnvMSBuildToolset:                     "msbuild",
			EnvMSBuildToolsPathPrefix + "msbuild": "/cx/msbuild/bin",
			EnvVisualStudioVersion:                "17.0",
			EnvVSInstallDir:                       root,
		}),
		Provider: provider,
	})

	result, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StrategyOverride, result.Strategy)
	assert.Equal(t, "/cx/msbuild/bin", result.BinPath)
	assert.True(t, result.OverrideActive)
	require.NotNil(t, result.Instance)
	assert.Zero(t, provider.pathCalls, "developer console is not probed once the override matches")
}

func TestLocate_OverrideHardErrorStopsCascade(t *testing.T) {
	root := t.TempDir()
	inst := instance("ent", root, "17.4.1", true, false)
	provider := &fakeProvider{byPath: map[string]*vsinstance.Instance{root: &inst}}
	l := New(Options{
		LookupEnv: envMap(map[string]string{
			EnvMSBuildToolset:                     "msbuild",
			EnvMSBuildToolsPathPrefix + "msbuild": "/cx/msbuild/bin",
			EnvVisualStudioVersion:                "14.0",
			EnvVSInstallDir:                       root,
		}),
		Provider: provider,
	})

	_, err := l.Locate(context.Background())
	assert.Equal(t, "MSBuild.Corext version 15.0 or greater is required", err.Error())
	assert.Zero(t, provider.pathCalls)
}

func TestLocate_ManagedRuntime(t *testing.T) {
	root := t.TempDir()
	inst := instance("ent", root, "17.4.1", true, false)
	provider := &fakeProvider{byPath: map[string]*vsinstance.Instance{root: &inst}}
	mock := &mockRunner{stdout: []byte(dotnetInfoOutput)}

	l := New(Options{
		LookupEnv:      envMap(map[string]string{EnvVSInstallDir: root}),
		ManagedRuntime: true,
		Provider:       provider,
		Dotnet:         &DotnetProbe{Runner: mock},
	})

	result, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StrategyDotnet, result.Strategy)
	assert.Equal(t, "/usr/lib/dotnet/sdk/6.0.100", result.BinPath)
	assert.Nil(t, result.Instance, "the dotnet path never carries a Visual Studio instance")
	assert.True(t, result.ManagedRuntime)
	assert.Equal(t, 1, provider.pathCalls, "developer console is still probed")
	assert.Equal(t, 1, mock.calls)
}

func TestLocate_ManagedRuntimeFailures(t *testing.T) {
	tests := []struct {
		name string
		mock *mockRunner
		want string
	}{
		{
			name: "stderr",
			mock: &mockRunner{stderr: []byte("The command could not be loaded\n")},
			want: "Failed to find .NET Core: The command could not be loaded",
		},
		{
			name: "no base path",
			mock: &mockRunner{stdout: []byte("nothing useful\n")},
			want: "Failed to find .NET Core.  Run dotnet --info for more information.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(Options{
				LookupEnv:      envMap(nil),
				ManagedRuntime: true,
				Provider:       &fakeProvider{},
				Dotnet:         &DotnetProbe{Runner: tt.mock},
			})

			var messages []string
			_, ok := l.TryLocate(context.Background(), func(m string) { messages = append(messages, m) })
			assert.False(t, ok)
			assert.Equal(t, []string{tt.want}, messages)
		})
	}
}

func TestLocate_CustomResolverOrder(t *testing.T) {
	root := t.TempDir()
	inst := instance("ent", root, "17.4.1", true, false)
	mock := &mockRunner{stdout: []byte(dotnetInfoOutput)}
	probe := &DotnetProbe{Runner: mock}

	l := New(Options{
		LookupEnv:      envMap(map[string]string{EnvVSInstallDir: root}),
		ManagedRuntime: true,
		Provider:       &fakeProvider{byPath: map[string]*vsinstance.Instance{root: &inst}},
		Dotnet:         probe,
		Resolvers:      []Resolver{DotnetResolver(probe), OverrideResolver()},
	})

	result, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StrategyDotnet, result.Strategy)
}

func TestLocate_LogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	l := New(Options{LookupEnv: envMap(nil), Provider: &fakeProvider{}})
	_, err := l.Locate(ctx)
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"strategy":"override"`)
	assert.Contains(t, buf.String(), `"outcome":"not_applicable"`)
}

func TestNew_Defaults(t *testing.T) {
	l := New(Options{})

	require.NotNil(t, l.opts.LookupEnv)
	assert.IsType(t, &vsinstance.VSWhere{}, l.opts.Provider)
	require.NotNil(t, l.opts.Dotnet)
	require.Len(t, l.opts.Resolvers, 3)
	assert.Equal(t, StrategyOverride, l.opts.Resolvers[0].Name())
	assert.Equal(t, StrategyDevConsole, l.opts.Resolvers[1].Name())
	assert.Equal(t, StrategyDotnet, l.opts.Resolvers[2].Name())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "matched", OutcomeMatched.String())
	assert.Equal(t, "not_applicable", OutcomeNotApplicable.String())
	assert.Equal(t, "hard_error", OutcomeHardError.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
