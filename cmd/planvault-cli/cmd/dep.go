package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Edit work item dependencies",
	Long: `Record or remove a dependency between two work items.

Examples:
  planvault-cli dep add T-002 T-001
  planvault-cli dep remove T-002 T-001`,
}

var depAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on>",
	Short: "Record that one item depends on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		add := commands.NewAddDependencyCommand(GetRepo(), args[0], args[1])
		result, err := add.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <id> <depends-on>",
	Short: "Remove a recorded dependency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remove := commands.NewRemoveDependencyCommand(GetRepo(), args[0], args[1])
		result, err := remove.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depCmd)
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
}
