package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
)

var syncPush bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync dependencies between the canvas and the frontmatter",
	Long: `By default the canvas wins: every work item's depends_on list is
rewritten from the edges arriving at its canvas node. With --push the
direction reverses and the recorded depends_on lists redraw the canvas
edges; edges not connecting two work items are left alone.

Examples:
  planvault-cli sync
  planvault-cli sync --push`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if syncPush {
			push := commands.NewPushDependenciesCommand(GetRepo(), GetCanvas(), GetCanvasPath())
			result, err := push.Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d edges added, %d removed\n", result.EdgesAdded, result.EdgesRemoved)
			return nil
		}

		sync := commands.NewSyncDependenciesCommand(GetRepo(), GetCanvas(), GetCanvasPath())
		result, err := sync.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d updated, %d skipped (no canvas node)\n", len(result.Updated), result.Skipped)
		if len(result.Updated) > 0 {
			fmt.Printf("updated: %s\n", strings.Join(result.Updated, ", "))
		}
		return result.Err()
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "push depends_on onto the canvas instead")
}
