package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/johnarthur1/slngen/internal/config"
)

// newConfigValidateCmd creates the config validate command for validating configuration.
func newConfigValidateCmd(state *rootState) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax
- Runtime name (framework or netcore)
- Log format (console or json)
- Environment overrides (SLNGEN_LOG_LEVEL, SLNGEN_LOG_FORMAT, SLNGEN_RUNTIME)`,
		Example: `  # Validate current configuration
  slngen config validate

  # Validate and show detailed information
  slngen config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, state, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, state *rootState, verbose bool) error {
	cfg, err := config.Load(state.configPath, state.lookupEnv)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Configuration is valid")

	if verbose {
		printVerboseDetails(out, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(w io.Writer, cfg *config.Config) {
	runtimeName, _ := config.ParseRuntime(cfg.Locator.Runtime)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Configuration details:")
	_, _ = fmt.Fprintf(w, "  Logging level: %s\n", cfg.Logging.Level)
	_, _ = fmt.Fprintf(w, "  Logging format: %s\n", valueOrDefault(cfg.Logging.Format, "console"))
	_, _ = fmt.Fprintf(w, "  Log file: %s\n", valueOrDefault(cfg.Logging.File, "(stderr)"))
	_, _ = fmt.Fprintf(w, "  Runtime: %s\n", runtimeName)
	_, _ = fmt.Fprintf(w, "  dotnet: %s\n", valueOrDefault(cfg.Locator.DotnetPath, "dotnet (PATH)"))
	_, _ = fmt.Fprintf(w, "  vswhere: %s\n", valueOrDefault(cfg.Locator.VSWherePath, "(installer directory)"))
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
