// Package vsinstance enumerates Visual Studio installations on the host.
package vsinstance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known setup identifiers.
const (
	ProductBuildTools = "Microsoft.VisualStudio.Product.BuildTools"
	PackageMSBuild    = "Microsoft.Component.MSBuild"
)

// Instance is one installed Visual Studio product.
type Instance struct {
	InstanceID       string  `json:"instanceId" yaml:"instance_id"`
	DisplayName      string  `json:"displayName,omitempty" yaml:"display_name"`
	InstallationPath string  `json:"installationPath" yaml:"installation_path"`
	Version          Version `json:"installationVersion" yaml:"installation_version"`
	ProductID        string  `json:"productId,omitempty" yaml:"product_id"`
	HasMSBuild       bool    `json:"hasMSBuild" yaml:"has_msbuild"`
	IsBuildTools     bool    `json:"isBuildTools" yaml:"is_build_tools"`
	IsLaunchable     bool    `json:"isLaunchable" yaml:"is_launchable"`
}

// Provider enumerates installations.
type Provider interface {
	// GetLaunchableInstances returns every installation that can be launched.
	GetLaunchableInstances(ctx context.Context) ([]Instance, error)
	// GetInstanceForPath returns the installation containing path, or nil.
	GetInstanceForPath(ctx context.Context, path string) (*Instance, error)
}

// Static serves a fixed set of instances.
type Static struct {
	Instances []Instance `yaml:"instances"`
}

// GetLaunchableInstances implements Provider.
func (s *Static) GetLaunchableInstances(_ context.Context) ([]Instance, error) {
	var out []Instance
	for _, inst := range s.Instances {
		if inst.IsLaunchable {
			out = append(out, inst)
		}
	}
	return out, nil
}

// GetInstanceForPath implements Provider. A path matches an instance when it is
// the installation root or lies beneath it.
func (s *Static) GetInstanceForPath(_ context.Context, path string) (*Instance, error) {
	for i := range s.Instances {
		if withinRoot(s.Instances[i].InstallationPath, path) {
			inst := s.Instances[i]
			return &inst, nil
		}
	}
	return nil, nil //nolint:nilnil // nil instance means none installed at path
}

// LoadCatalog reads a YAML instance catalog:
//
//	instances:
//	  - instance_id: 1a2b3c
//	    installation_path: C:\Program Files\Microsoft Visual Studio\2022\Enterprise
//	    installation_version: "17.4.33205.214"
//	    has_msbuild: true
//	    is_launchable: true
func LoadCatalog(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance catalog %s: %w", path, err)
	}

	var catalog Static
	if err = yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing instance catalog %s: %w", path, err)
	}
	for i, inst := range catalog.Instances {
		if inst.InstallationPath == "" {
			return nil, fmt.Errorf("instance catalog %s: entry %d: %w", path, i, errMissingPath)
		}
	}
	return &catalog, nil
}

var errMissingPath = errors.New("installation_path is required")

func withinRoot(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	r := filepath.Clean(root)
	p := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		r = strings.ToLower(r)
		p = strings.ToLower(p)
	}
	if p == r {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(r, string(filepath.Separator))+string(filepath.Separator))
}
