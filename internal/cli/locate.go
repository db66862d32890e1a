package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/johnarthur1/slngen/internal/config"
	"github.com/johnarthur1/slngen/internal/locator"
	"github.com/johnarthur1/slngen/internal/vsinstance"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

// locateOutput is the JSON shape printed by locate --format json.
type locateOutput struct {
	BinPath        string               `json:"binPath"`
	Strategy       string               `json:"strategy"`
	Runtime        string               `json:"runtime"`
	OverrideActive bool                 `json:"overrideActive"`
	Instance       *vsinstance.Instance `json:"instance,omitempty"`
}

// newLocateCmd creates the locate command, which prints the MSBuild directory
// for the current environment.
func newLocateCmd(state *rootState) *cobra.Command {
	var (
		runtimeFlag string
		format      string
		instances   string
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the MSBuild directory SlnGen would load",
		Long: `Locates MSBuild by trying, in order:

  1. A CoreXT override (MSBuildToolset and MSBuildToolsPath_<toolset>)
  2. The Visual Studio developer console (VSINSTALLDIR)
  3. The .NET SDK reported by dotnet --info (netcore runtime only)

The first strategy that applies decides the result.`,
		Example: `  # Locate MSBuild
  slngen locate

  # Locate MSBuild for the .NET Framework build
  slngen locate --runtime framework

  # Print JSON
  slngen locate --format json

  # Use a fixed instance catalog instead of vswhere
  slngen locate --instances instances.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.settings()
			if cmd.Flags().Changed("runtime") {
				cfg.Locator.Runtime = runtimeFlag
			}
			return runLocate(cmd, state, cfg, format, instances)
		},
	}

	cmd.Flags().StringVar(&runtimeFlag, "runtime", "",
		"runtime flavor: framework or netcore (default from config, else platform)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	cmd.Flags().StringVar(&instances, "instances", "",
		"YAML catalog of Visual Studio instances to use instead of vswhere")

	return cmd
}

func runLocate(cmd *cobra.Command, state *rootState, cfg *config.Config, format, instances string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatText && format != formatJSON {
		return fmt.Errorf("invalid format %q: must be %s or %s", format, formatText, formatJSON)
	}

	runtimeName, err := config.ParseRuntime(cfg.Locator.Runtime)
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, instances)
	if err != nil {
		return err
	}

	l := locator.New(locator.Options{
		LookupEnv:      state.lookupEnv,
		ManagedRuntime: runtimeName == config.RuntimeNetCore,
		Provider:       provider,
		Dotnet:         locator.NewDotnetProbe(cfg.Locator.DotnetPath),
	})

	ctx := cmd.Context()
	logger.Debug().
		Ctx(ctx).
		Str("runtime", runtimeName).
		Str("instances", instances).
		Msg("locating MSBuild")

	result, err := l.Locate(ctx)
	if err != nil {
		return err
	}

	out := locateOutput{
		BinPath:        result.BinPath,
		Strategy:       result.Strategy,
		Runtime:        runtimeName,
		OverrideActive: result.OverrideActive,
		Instance:       result.Instance,
	}

	w := cmd.OutOrStdout()
	switch {
	case format == formatJSON:
		return renderLocateJSON(w, out)
	case isWriterTerminal(w):
		return renderLocateStyled(w, out)
	default:
		return renderLocatePlain(w, out)
	}
}

// newProvider returns a catalog-backed provider when path is set, and vswhere
// otherwise.
func newProvider(cfg *config.Config, path string) (vsinstance.Provider, error) {
	if path != "" {
		return vsinstance.LoadCatalog(path)
	}
	return vsinstance.NewVSWhere(cfg.Locator.VSWherePath), nil
}

func renderLocateJSON(w io.Writer, out locateOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// locateRows returns the label/value pairs shared by the plain and styled renderers.
func locateRows(out locateOutput) [][2]string {
	rows := [][2]string{
		{"MSBuild", out.BinPath},
		{"Strategy", out.Strategy},
		{"Runtime", out.Runtime},
	}
	if out.OverrideActive {
		rows = append(rows, [2]string{"CoreXT", "override active"})
	}
	if inst := out.Instance; inst != nil {
		name := inst.DisplayName
		if name == "" {
			name = inst.InstanceID
		}
		rows = append(rows,
			[2]string{"Instance", name},
			[2]string{"Version", inst.Version.String()},
			[2]string{"Installation", inst.InstallationPath},
		)
	}
	return rows
}

func renderLocatePlain(w io.Writer, out locateOutput) error {
	const tabPadding = 2
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, row := range locateRows(out) {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// renderLocateStyled writes the result as a bordered box for TTY output.
func renderLocateStyled(w io.Writer, out locateOutput) error {
	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33"))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "252"})
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	rows := locateRows(out)
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		label := labelStyle.Width(width + 1).Render(row[0])
		lines = append(lines, label+" "+valueStyle.Render(row[1]))
	}

	_, err := fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
	return err
}
