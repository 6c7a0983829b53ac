package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
	"planvault/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> [new-status]",
	Short: "Show or change a work item's status",
	Long: `Without a new status, lists the transitions the item may make right
now. With one, applies it: the transition must be allowed by the
lifecycle rules, and completing a milestone requires every story in it
to be Completed first.

Examples:
  planvault-cli status T-001
  planvault-cli status T-001 "In Progress"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 1 {
			targets, err := commands.AvailableTransitions(GetRepo(), args[0])
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				fmt.Println("No transitions available")
				return nil
			}
			for _, s := range targets {
				fmt.Println(s)
			}
			return nil
		}

		transition := commands.NewTransitionCommand(GetRepo(), args[0], domain.Status(args[1]))
		result, err := transition.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
