package locator

import (
	"context"
	"path/filepath"

	"github.com/johnarthur1/slngen/internal/process"
	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// fakeProvider implements vsinstance.Provider for testing.
type fakeProvider struct {
	instances []vsinstance.Instance
	err       error
	byPath    map[string]*vsinstance.Instance
	pathErr   error

	launchableCalls int
	pathCalls       int
	lastPath        string
}

func (f *fakeProvider) GetLaunchableInstances(_ context.Context) ([]vsinstance.Instance, error) {
	f.launchableCalls++
	return f.instances, f.err
}

func (f *fakeProvider) GetInstanceForPath(_ context.Context, path string) (*vsinstance.Instance, error) {
	f.pathCalls++
	f.lastPath = path
	if f.pathErr != nil {
		return nil, f.pathErr
	}
	return f.byPath[path], nil
}

// mockRunner implements process.Runner for testing.
type mockRunner struct {
	stdout []byte
	stderr []byte
	err    error
	block  bool

	calls int
	last  process.Command
}

func (m *mockRunner) Run(ctx context.Context, cmd process.Command) ([]byte, []byte, error) {
	m.calls++
	m.last = cmd
	if m.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return m.stdout, m.stderr, m.err
}

// envMap returns a LookupEnv func over vars.
func envMap(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func instance(id, path, version string, hasMSBuild, buildTools bool) vsinstance.Instance {
	return vsinstance.Instance{
		InstanceID:       id,
		InstallationPath: filepath.FromSlash(path),
		Version:          vsinstance.MustParseVersion(version),
		HasMSBuild:       hasMSBuild,
		IsBuildTools:     buildTools,
		IsLaunchable:     true,
	}
}

const dotnetInfoOutput = `.NET SDK (reflecting any global.json):
 Version:   6.0.100
 Commit:    9e8b04bbff

Runtime Environment:
 OS Name:     ubuntu
 OS Version:  22.04
 OS Platform: Linux
 RID:         ubuntu.22.04-x64
  Base Path:   /usr/lib/dotnet/sdk/6.0.100

Host (useful for support):
  Version: 6.0.0
`
