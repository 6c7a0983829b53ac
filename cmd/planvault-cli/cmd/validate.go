package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/application/commands"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the vault for consistency problems",
	Long: `Checks every work item for broken parent and dependency references,
duplicate IDs, and wrong parent types, plus canvas file nodes pointing
at files that are not work items. Exits non-zero when errors are
found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		validate := commands.NewValidateVaultCommand(GetRepo(), GetCanvas(), GetCanvasPath())
		result, err := validate.Execute(context.Background())
		if err != nil {
			return err
		}

		for _, issue := range result.Issues {
			fmt.Printf("[%s] %s: %s\n", issue.Severity, issue.EntityID, issue.Message)
		}
		fmt.Printf("%d entities checked, %d errors, %d warnings\n",
			result.Entities, result.Errors, result.Warnings)

		if result.Errors > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
