package styles

import (
	"github.com/charmbracelet/lipgloss"

	"planvault/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Cyan      = lipgloss.Color("#06B6D4")
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Board row styles
	RowMilestone = lipgloss.NewStyle().
			Bold(true)

	RowStory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	RowTask = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	SectionHeader = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Status badge styles
	BadgeNotStarted = lipgloss.NewStyle().
			Foreground(Muted)

	BadgeInProgress = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	BadgeCompleted = lipgloss.NewStyle().
			Foreground(Secondary)

	BadgeBlocked = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// BadgeStyle returns the style for a status badge
func BadgeStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusInProgress:
		return BadgeInProgress
	case domain.StatusCompleted:
		return BadgeCompleted
	case domain.StatusBlocked:
		return BadgeBlocked
	default:
		return BadgeNotStarted
	}
}
