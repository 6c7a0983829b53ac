package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
)

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List work items blocked by their dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		report := commands.NewBlockedReportCommand(GetRepo())
		blocked, err := report.Execute(context.Background())
		if err != nil {
			return err
		}

		if len(blocked) == 0 {
			fmt.Println("Nothing is blocked")
			return nil
		}
		for _, b := range blocked {
			fmt.Printf("%-7s %s  (%s)\n", b.ID, b.Title, b.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blockedCmd)
}
