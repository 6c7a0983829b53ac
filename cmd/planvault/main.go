package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"planvault/internal/adapters/filesystem"
	"planvault/internal/adapters/obsidian"
	"planvault/internal/adapters/tui"
	"planvault/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repo := filesystem.NewRepository(cfg.Vault)
	opener := obsidian.NewOpener(filesystem.ExpandHome(cfg.Vault))

	app := tui.NewApp(repo, opener)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
