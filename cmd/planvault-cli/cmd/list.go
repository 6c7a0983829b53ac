package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planvault/internal/domain"
)

var (
	listType   string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List work items in the vault",
	Long: `List milestones, stories, and tasks, optionally filtered by type
and/or status. The printed status is the display status: an item with
unfinished dependencies shows as Blocked.

Examples:
  planvault-cli list
  planvault-cli list --type task
  planvault-cli list --status "In Progress"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFilter := domain.Status(listStatus)
		if listStatus != "" && !statusFilter.IsValid() {
			return fmt.Errorf("unknown status: %q", listStatus)
		}

		entities, err := GetRepo().ListAll()
		if err != nil {
			return err
		}

		resolve := domain.ResolverFromSlice(entities)
		for _, e := range entities {
			if listType != "" && string(e.Type) != strings.ToLower(listType) {
				continue
			}
			display := e.DisplayStatus(resolve)
			if listStatus != "" && display != statusFilter {
				continue
			}
			fmt.Printf("%-7s [%-11s] %s\n", e.ID, display, e.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by type: milestone, story, or task")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by display status")
}
