package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/mode"
)

var switchDryRun bool

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Switch internal dependencies to local paths",
	Long:  `Rewrite every internal dependency declaration to carry a path into the workspace, for in-tree development.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, mode.Local)
	},
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Switch internal dependencies to registry versions",
	Long:  `Rewrite every internal dependency declaration to a bare registry version, for publishing.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, mode.Remote)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle between local and remote mode",
	Long: `Switch to the opposite of the detected mode. A mixed or unknown state
counts as the configured ambiguous_mode (remote by default), so toggling a
half-switched workspace repairs it toward local.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, "")
	},
}

// runSwitch drives one mode switch and prints the outcome. An empty target
// toggles.
func runSwitch(cmd *cobra.Command, target mode.Mode) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	req := &engine.SwitchRequest{
		CWD:    cwd,
		Target: target,
		DryRun: switchDryRun,
	}

	result, err := newEngine().Switch(context.Background(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	printWarnings(result.Warnings)

	if result.NoOp {
		PrintSuccess(fmt.Sprintf("Already in %s mode", result.To))
		return nil
	}

	if result.DryRun {
		PrintSection("Dry Run")
		PrintInfo(fmt.Sprintf("Would switch from %s to %s mode", result.From, result.To))
		if len(result.Changed) == 0 {
			PrintEmptyState("no manifests would change")
			return nil
		}
		changes := make([]string, 0, len(result.Changed))
		for _, c := range result.Changed {
			changes = append(changes, fmt.Sprintf("%s (%s)", c.Path, PrintCount(c.Lines, "line", "lines")))
		}
		PrintList(changes, 1)
		return nil
	}

	PrintSuccess(fmt.Sprintf("Switched to %s mode", result.To))
	PrintLabelValue("Workspace", result.Root)
	PrintLabelValue("Version", result.Version)
	PrintLabelValue("Rewritten", PrintCount(len(result.Changed), "manifest", "manifests"))
	if debugOutput {
		for _, c := range result.Changed {
			PrintLabelValue(c.Path, PrintCount(c.Lines, "line changed", "lines changed"))
		}
	}

	switch result.To {
	case mode.Local:
		PrintInfo("Using local path dependencies (for development)")
	case mode.Remote:
		PrintInfo("Using registry dependencies (for publishing)")
		PrintWarning("Ensure all dependencies are published before testing")
	}

	if result.LockWarning != "" {
		PrintWarning(result.LockWarning)
		PrintDim("Run 'cargo update' manually to refresh the lock file")
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{localCmd, remoteCmd, toggleCmd, rootCmd} {
		cmd.Flags().BoolVar(&switchDryRun, "dry-run", false, "Show what would change without writing")
	}
}
