package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Refresh the status badges on the canvas",
	Long: `Keeps one status badge per work item node on the canvas: creates
missing badges, recolors stale ones, and removes badges whose node is
gone. Running it twice in a row changes nothing the second time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reconcile := commands.NewReconcileIndicatorsCommand(GetRepo(), GetCanvas(), GetCanvasPath())
		result, err := reconcile.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d created, %d updated, %d removed (%d examined)\n",
			result.Created, result.Updated, result.Removed, result.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
