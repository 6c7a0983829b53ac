package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"planvault/internal/adapters/sqlite"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Refresh the vault's search index",
	Long: `Updates the SQLite index under .planvault/ from the markdown files.
By default only changed files are re-read; --rebuild starts from
scratch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx := sqlite.NewIndex()
		if err := idx.Open(GetVaultPath()); err != nil {
			return err
		}
		defer idx.Close()

		var stats *statsResult
		if indexRebuild || idx.NeedsFullRebuild() {
			s, err := idx.SyncFull()
			if err != nil {
				return err
			}
			stats = &statsResult{"rebuilt", s.Added, s.Updated, s.Deleted, s.FilesScanned}
		} else {
			s, err := idx.SyncIncremental()
			if err != nil {
				return err
			}
			stats = &statsResult{"synced", s.Added, s.Updated, s.Deleted, s.FilesScanned}
		}

		fmt.Printf("%s: %d added, %d updated, %d deleted (%d files scanned)\n",
			stats.mode, stats.added, stats.updated, stats.deleted, stats.scanned)
		return nil
	},
}

type statsResult struct {
	mode    string
	added   int
	updated int
	deleted int
	scanned int
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "rebuild the index from scratch")
}
