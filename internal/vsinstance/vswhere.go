package vsinstance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/internal/process"
)

// DefaultVSWhereTimeout bounds a single vswhere query.
const DefaultVSWhereTimeout = 30 * time.Second

// Sentinel errors for vswhere queries.
var (
	// ErrVSWhereNotFound indicates vswhere.exe could not be located.
	ErrVSWhereNotFound = errors.New(
		"vswhere not found; install Visual Studio 2017 or later or set locator.vswhere_path")

	// ErrVSWhereFailed indicates vswhere ran but reported an error.
	ErrVSWhereFailed = errors.New("vswhere failed")
)

// VSWhere enumerates installations by running the Visual Studio Locator
// (vswhere.exe) and decoding its JSON output.
type VSWhere struct {
	Path      string                            // Explicit vswhere path (empty = discover).
	Runner    process.Runner                    // Defaults to process.ExecRunner.
	LookupEnv func(key string) (string, bool)   // Defaults to os.LookupEnv.
	LookPath  func(file string) (string, error) // Defaults to exec.LookPath.
	Timeout   time.Duration                     // Defaults to DefaultVSWhereTimeout.
}

// NewVSWhere returns a provider using the vswhere executable at path, or the
// standard install location when path is empty.
func NewVSWhere(path string) *VSWhere {
	return &VSWhere{Path: path}
}

// vswhereInstance mirrors the subset of vswhere -format json we consume.
type vswhereInstance struct {
	InstanceID          string `json:"instanceId"`
	DisplayName         string `json:"displayName"`
	InstallationPath    string `json:"installationPath"`
	InstallationVersion string `json:"installationVersion"`
	ProductID           string `json:"productId"`
	IsLaunchable        bool   `json:"isLaunchable"`
	Packages            []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"packages"`
}

// GetLaunchableInstances implements Provider.
func (v *VSWhere) GetLaunchableInstances(ctx context.Context) ([]Instance, error) {
	all, err := v.query(ctx, "launchable",
		"-all", "-prerelease", "-products", "*", "-include", "packages", "-format", "json", "-utf8")
	if err != nil {
		return nil, err
	}

	launchable := all[:0]
	for _, inst := range all {
		if inst.IsLaunchable {
			launchable = append(launchable, inst)
		}
	}
	return launchable, nil
}

// GetInstanceForPath implements Provider.
func (v *VSWhere) GetInstanceForPath(ctx context.Context, path string) (*Instance, error) {
	found, err := v.query(ctx, "path",
		"-path", path, "-include", "packages", "-format", "json", "-utf8")
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil //nolint:nilnil // nil instance means none installed at path
	}
	return &found[0], nil
}

func (v *VSWhere) query(ctx context.Context, operation string, args ...string) ([]Instance, error) {
	log := logging.FromContext(ctx)

	exe, err := v.executable()
	if err != nil {
		return nil, err
	}

	timeout := v.Timeout
	if timeout == 0 {
		timeout = DefaultVSWhereTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().
		Ctx(ctx).
		Str("component", "vsinstance").
		Str("operation", operation).
		Str("vswhere", exe).
		Strs("args", args).
		Msg("querying Visual Studio instances")

	stdout, stderr, err := v.runner().Run(ctx, process.Command{
		Name:       exe,
		Args:       args,
		HideWindow: true,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("vswhere %s timed out after %s", operation, timeout)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrVSWhereFailed, err, strings.TrimSpace(string(stderr)))
	}

	instances, err := decodeVSWhere(stdout)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "vsinstance").
		Str("operation", operation).
		Int("instances", len(instances)).
		Msg("vswhere query completed")

	return instances, nil
}

func decodeVSWhere(stdout []byte) ([]Instance, error) {
	var raw []vswhereInstance
	if err := json.NewDecoder(process.NewTextReader(stdout)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing vswhere output: %w", err)
	}

	instances := make([]Instance, 0, len(raw))
	for _, r := range raw {
		ver, err := ParseVersion(r.InstallationVersion)
		if err != nil {
			return nil, fmt.Errorf("instance %s: %w", r.InstanceID, err)
		}

		inst := Instance{
			InstanceID:       r.InstanceID,
			DisplayName:      r.DisplayName,
			InstallationPath: r.InstallationPath,
			Version:          ver,
			ProductID:        r.ProductID,
			IsBuildTools:     r.ProductID == ProductBuildTools,
			IsLaunchable:     r.IsLaunchable,
		}
		for _, p := range r.Packages {
			if strings.EqualFold(p.ID, PackageMSBuild) {
				inst.HasMSBuild = true
				break
			}
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// executable resolves vswhere: explicit path, the installer directory under
// ProgramFiles(x86), then PATH.
func (v *VSWhere) executable() (string, error) {
	if v.Path != "" {
		return v.Path, nil
	}

	lookupEnv := v.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if pf, ok := lookupEnv("ProgramFiles(x86)"); ok && strings.TrimSpace(pf) != "" {
		candidate := filepath.Join(pf, "Microsoft Visual Studio", "Installer", "vswhere.exe")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	lookPath := v.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath("vswhere"); err == nil {
		return path, nil
	}
	return "", ErrVSWhereNotFound
}

func (v *VSWhere) runner() process.Runner {
	if v.Runner == nil {
		return process.ExecRunner{}
	}
	return v.Runner
}
