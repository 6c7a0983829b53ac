package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planvault/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single work item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ent, err := GetRepo().Load(args[0])
		if err != nil {
			return err
		}
		entities, err := GetRepo().ListAll()
		if err != nil {
			return err
		}
		resolve := domain.ResolverFromSlice(entities)

		fmt.Printf("%s  %s\n", ent.ID, ent.Title)
		fmt.Printf("type:       %s\n", ent.Type)
		fmt.Printf("status:     %s\n", ent.Status)
		if ent.Parent != "" {
			fmt.Printf("parent:     %s\n", ent.Parent)
		}
		if len(ent.DependsOn) > 0 {
			fmt.Printf("depends_on: %s\n", strings.Join(ent.DependsOn, ", "))
		}
		if blockers := ent.Blockers(resolve); len(blockers) > 0 {
			fmt.Printf("blocked by: %s\n", strings.Join(blockers, ", "))
		}
		fmt.Printf("path:       %s\n", ent.Path)
		if !ent.Updated.IsZero() {
			fmt.Printf("updated:    %s\n", ent.Updated.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
