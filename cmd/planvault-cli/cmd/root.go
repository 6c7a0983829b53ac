package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planvault/internal/adapters/filesystem"
	"planvault/internal/config"
	"planvault/internal/ports"
)

var (
	vaultPath  string
	canvasPath string

	repo        ports.EntityRepository
	canvasStore ports.CanvasStore
)

var rootCmd = &cobra.Command{
	Use:   "planvault-cli",
	Short: "CLI for managing milestone/story/task plan vaults",
	Long: `planvault-cli is a command-line interface for Obsidian vaults that
track milestones, stories, and tasks as markdown files with a canvas
diagram of their dependencies.

It provides commands to list and inspect work items, move them through
their lifecycle, edit dependencies, and keep the canvas and the
frontmatter consistent with each other.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		repo = filesystem.NewRepository(vaultPath)
		canvasStore = filesystem.NewCanvasStore(vaultPath)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{Vault: config.DefaultVaultPath, Canvas: config.DefaultCanvasPath}
	}
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", cfg.Vault, "path to the vault")
	rootCmd.PersistentFlags().StringVarP(&canvasPath, "canvas", "c", cfg.Canvas, "vault-relative canvas file")
}

// GetRepo returns the initialized repository
func GetRepo() ports.EntityRepository {
	return repo
}

// GetCanvas returns the initialized canvas store
func GetCanvas() ports.CanvasStore {
	return canvasStore
}

// GetCanvasPath returns the vault-relative canvas path
func GetCanvasPath() string {
	return canvasPath
}

// GetVaultPath returns the expanded vault path
func GetVaultPath() string {
	return filesystem.ExpandHome(vaultPath)
}
