package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/mode"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current dependency mode",
	Long:  `Display the workspace version, the detected dependency mode, and the discovered internal dependencies.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := newEngine().Status(context.Background(), &engine.StatusRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printWarnings(result.Warnings)

		version := result.Version
		if version == "" {
			version = "(none)"
		}
		PrintLabelValue("Workspace", result.Root)
		PrintLabelValue("Version", version)
		PrintLabelValueWithColor("Mode", string(result.Mode), modeColor(string(result.Mode)))
		if len(result.InternalDeps) > 0 {
			PrintLabelValue("Internal deps", strings.Join(result.InternalDeps, ", "))
		} else {
			PrintEmptyState("no internal dependencies discovered")
		}

		switch result.Mode {
		case mode.Local:
			PrintInfo("Using local path dependencies (for development)")
		case mode.Remote:
			PrintInfo("Using registry dependencies (for publishing)")
		case mode.Mixed:
			PrintWarning("Mixed mode detected - some deps are local, some remote")
			PrintDim("Run 'depmode local' or 'depmode remote' to repair")
		}

		if debugOutput {
			PrintSection("Manifests")
			for _, f := range result.Files {
				PrintLabelValue(f.Path, fmt.Sprintf("local=%d remote=%d", f.Local, f.Remote))
			}
		}
		return nil
	},
}
