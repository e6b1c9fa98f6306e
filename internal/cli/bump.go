package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/depmode/internal/engine"
	"github.com/danieljhkim/depmode/internal/version"
)

var bumpDryRun bool

var bumpCmd = &cobra.Command{
	Use:   "bump <major|minor|patch>",
	Short: "Bump the workspace version",
	Long: `Raise the workspace version by one component and update every internal
dependency declaration in the root manifest to match. Declaration paths are
left alone, so a bump never changes the dependency mode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := version.ParseLevel(args[0])
		if err != nil {
			return err
		}

		cwd, err := workingDir()
		if err != nil {
			return err
		}

		req := &engine.BumpRequest{
			CWD:    cwd,
			Level:  level,
			DryRun: bumpDryRun,
		}

		result, err := newEngine().Bump(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printWarnings(result.Warnings)

		if result.DryRun {
			PrintInfo(fmt.Sprintf("Would bump from %s to %s", result.From, result.To))
			return nil
		}

		PrintSuccess(fmt.Sprintf("Version bumped to %s", result.To))
		PrintLabelValue("Previous", result.From)
		if result.LockWarning != "" {
			PrintWarning(result.LockWarning)
			PrintDim("Run 'cargo update --workspace' manually to refresh the lock file")
		}

		PrintSection("Next steps")
		PrintNumberedList([]string{
			fmt.Sprintf("Commit changes: git commit -am 'release: v%s'", result.To),
			fmt.Sprintf("Tag release: git tag v%s", result.To),
			"Push: git push && git push --tags",
		}, 1)
		return nil
	},
}

func init() {
	bumpCmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "Show the new version without writing")
}
