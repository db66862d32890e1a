// Package cli implements the slngen command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/johnarthur1/slngen/internal/config"
	"github.com/johnarthur1/slngen/internal/logging"
	"github.com/johnarthur1/slngen/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
// Any other writer (a bytes.Buffer in tests, a pipe) is not.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootState is shared between the root command and its subcommands for the
// lifetime of one invocation.
type rootState struct {
	lookupEnv  func(string) (string, bool)
	configPath string
	cfg        *config.Config
	logResult  *logging.LogPathResult
}

// settings returns the loaded configuration, or defaults when PersistentPreRunE
// did not run (a subcommand executed on its own).
func (s *rootState) settings() *config.Config {
	if s.cfg == nil {
		s.cfg = config.New()
	}
	return s.cfg
}

// NewRootCmd creates the root Cobra command for the slngen CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env lookup for testability.
// args[0], when present, names the binary in help output. lookupEnv is used for
// configuration overrides and is handed to the locator.
func NewRootCmdWithArgs(
	ver string,
	args []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	state := &rootState{lookupEnv: lookupEnv}

	cmd := &cobra.Command{
		Use:           commandName(args),
		Short:         "Locate the MSBuild toolchain SlnGen loads",
		Long:          "slngen: find the MSBuild installation to use from a CoreXT override, a Visual Studio developer console, or the .NET SDK",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(state.configPath, state.lookupEnv)
			if err != nil {
				return err
			}
			state.cfg = cfg

			result := setupLogging(cmd, cfg)
			state.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, state.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&state.configPath, "config", "",
		"config file (default $SLNGEN_HOME/config.yaml)")
	cmd.AddCommand(newLocateCmd(state), newConfigCmd(state), newVersionCmd())

	return cmd
}

// commandName derives the command name from the invoked binary, dropping any
// .exe suffix.
func commandName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "slngen"
	}
	name := filepath.Base(args[0])
	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." {
		return "slngen"
	}
	return name
}

const rootCmdExample = `  # Locate MSBuild for the current environment
  slngen locate

  # Locate MSBuild for the .NET Framework build inside a developer console
  slngen locate --runtime framework

  # Print the result as JSON
  slngen locate --format json

  # Resolve against a fixed instance catalog instead of vswhere
  slngen locate --instances instances.yaml

  # Write a default configuration file
  slngen config init`

// newConfigCmd creates the config command group with configuration subcommands.
// The group skips loading the config file so that a broken file can still be
// validated or replaced.
func newConfigCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			cfg.ApplyEnvOverrides(state.lookupEnv)

			result := setupLogging(cmd, cfg)
			state.logResult = &result
			return nil
		},
	}
	cmd.AddCommand(newConfigInitCmd(state), newConfigValidateCmd(state))
	return cmd
}

// newVersionCmd prints build metadata.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "slngen %s\n", cmd.Root().Version)
			_, _ = fmt.Fprintf(out, "commit: %s\n", version.GetGitCommit())
			_, err := fmt.Fprintf(out, "built:  %s\n", version.GetBuildDate())
			return err
		},
	}
}
