package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnarthur1/slngen/internal/config"
)

// newConfigInitCmd creates the config init command for initializing configuration.
func newConfigInitCmd(state *rootState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$SLNGEN_HOME/config.yaml (default ~/.slngen/config.yaml), or at the path given
with --config.`,
		Example: `  # Create configuration
  slngen config init

  # Create configuration, overwriting existing
  slngen config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, state.configPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, configPath string, force bool) error {
	if configPath == "" {
		var err error
		if configPath, err = config.GetConfigPath(); err != nil {
			return err
		}
	}

	// Check if config already exists and force isn't set
	if !force {
		_, err := os.Stat(configPath)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", configPath, err)
		}
	}

	cfg := config.New()
	cfg.Locator.Runtime = config.DefaultRuntime()
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Configuration initialized successfully")
	_, err := fmt.Fprintf(out, "Configuration file: %s\n", configPath)
	return err
}
