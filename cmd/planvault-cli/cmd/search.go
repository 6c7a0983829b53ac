package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/adapters/sqlite"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search work items by ID or title",
	Long: `Search the vault's SQLite index for work items matching the query.
The index is refreshed before searching; stale entries are dropped.

Examples:
  planvault-cli search auth
  planvault-cli search T-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openSyncedIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		results, err := idx.Search(args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-7s [%-11s] %s\n", r.ID, r.Status, r.Title)
		}
		return nil
	},
}

// openSyncedIndex opens the vault index and brings it up to date.
func openSyncedIndex() (*sqlite.Index, error) {
	idx := sqlite.NewIndex()
	if err := idx.Open(GetVaultPath()); err != nil {
		return nil, err
	}
	var err error
	if idx.NeedsFullRebuild() {
		_, err = idx.SyncFull()
	} else {
		_, err = idx.SyncIncremental()
	}
	if err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
