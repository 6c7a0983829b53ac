package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"planvault/internal/adapters/tui/views"
	"planvault/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state ViewState
	board *views.BoardModel
	help  *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(repo ports.EntityRepository, opener ports.ObsidianOpener) *App {
	return &App{
		state: ViewBoard,
		board: views.NewBoardModel(repo, opener),
		help:  views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBoardMsg:
		a.state = ViewBoard
		return a, a.board.Reload()
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.board.View()
	}
}
