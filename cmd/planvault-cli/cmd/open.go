package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/adapters/obsidian"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a work item in Obsidian",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ent, err := GetRepo().Load(args[0])
		if err != nil {
			return err
		}

		opener := obsidian.NewOpener(GetVaultPath())
		if err := opener.OpenFile(ent.Path); err != nil {
			return err
		}
		fmt.Printf("Opened %s\n", ent.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
