// Package config loads SlnGen's user configuration from $SLNGEN_HOME/config.yaml
// and applies environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/johnarthur1/slngen/internal/logging"
)

// ConfigFileName is the file read from the config directory.
const ConfigFileName = "config.yaml"

// EnvRuntime selects the runtime flavor, overriding the config file.
const EnvRuntime = "SLNGEN_RUNTIME"

// Runtime flavors. Framework is the build that ships next to Visual Studio;
// NetCore runs on the .NET SDK.
const (
	RuntimeFramework = "framework"
	RuntimeNetCore   = "netcore"
)

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Locator LocatorConfig `yaml:"locator"`
}

// LoggingConfig controls log level, format, and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// LocatorConfig controls how MSBuild is located.
type LocatorConfig struct {
	// Runtime is framework or netcore. Empty selects DefaultRuntime.
	Runtime string `yaml:"runtime,omitempty"`

	// DotnetPath is the dotnet executable to probe (default: dotnet on PATH).
	DotnetPath string `yaml:"dotnet_path,omitempty"`

	// VSWherePath is the vswhere executable (default: the Visual Studio installer directory).
	VSWherePath string `yaml:"vswhere_path,omitempty"`
}

// ErrInvalidRuntime is returned for a runtime other than framework or netcore.
var ErrInvalidRuntime = errors.New("invalid runtime")

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
	}
}

// DefaultRuntime is framework on Windows and netcore everywhere else, since
// the Framework build only exists on Windows.
func DefaultRuntime() string {
	if runtime.GOOS == "windows" {
		return RuntimeFramework
	}
	return RuntimeNetCore
}

// Load builds a Config from defaults, the YAML file at path, and environment
// overrides, in that order. An empty path selects $SLNGEN_HOME/config.yaml.
// A missing file is not an error unless path was given explicitly.
func Load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	cfg := New()

	explicit := path != ""
	if !explicit {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = configFilePath(dir)
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides(lookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces settings with SLNGEN_* environment variables that
// are set and non-blank.
func (c *Config) ApplyEnvOverrides(lookupEnv func(string) (string, bool)) {
	if v := envValue(lookupEnv, logging.EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := envValue(lookupEnv, logging.EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := envValue(lookupEnv, EnvRuntime); v != "" {
		c.Locator.Runtime = v
	}
}

// Validate checks values that would otherwise be silently ignored.
func (c *Config) Validate() error {
	if _, err := ParseRuntime(c.Locator.Runtime); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %s or %s",
			c.Logging.Format, logging.FormatConsole, logging.FormatJSON)
	}
	return nil
}

// ManagedRuntime reports whether the configured runtime is netcore.
func (c *Config) ManagedRuntime() bool {
	r, err := ParseRuntime(c.Locator.Runtime)
	if err != nil {
		return DefaultRuntime() == RuntimeNetCore
	}
	return r == RuntimeNetCore
}

// ParseRuntime normalizes a runtime name. Empty selects DefaultRuntime;
// "core" and "dotnet" are accepted as aliases for netcore.
func ParseRuntime(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultRuntime(), nil
	case RuntimeFramework, "netfx":
		return RuntimeFramework, nil
	case RuntimeNetCore, "core", "dotnet":
		return RuntimeNetCore, nil
	default:
		return "", fmt.Errorf("%w %q: must be %s or %s", ErrInvalidRuntime, s, RuntimeFramework, RuntimeNetCore)
	}
}

func envValue(lookupEnv func(string) (string, bool), key string) string {
	v, ok := lookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
