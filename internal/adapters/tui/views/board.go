package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planvault/internal/adapters/tui/styles"
	"planvault/internal/application/commands"
	"planvault/internal/domain"
	"planvault/internal/ports"
)

// BoardKeyMap defines key bindings for the board view
type BoardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Transition key.Binding
	CopyID     key.Binding
	Open       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

var BoardKeys = BoardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Transition: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "set status"),
	),
	CopyID: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy id"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Obsidian"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ViewState carries what every view model needs: the window size and a
// one-line notice (result or error) rendered under the content. View
// models embed it.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width, s.Height = width, height
}

// SetMessage sets the notice line; isErr selects the error styling.
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage drops the notice line.
func (s *ViewState) ClearMessage() {
	s.SetMessage("", false)
}

// SectionOrder is the display order of the board sections. Anything in
// flight or stuck sorts above the backlog and the done pile.
var SectionOrder = []domain.Status{
	domain.StatusInProgress,
	domain.StatusBlocked,
	domain.StatusNotStarted,
	domain.StatusCompleted,
}

// boardRow is one selectable line: an entity together with the section
// it renders under.
type boardRow struct {
	entity  *domain.Entity
	display domain.Status
}

// BoardModel is the model for the status board view
type BoardModel struct {
	ViewState

	repo   ports.EntityRepository
	opener ports.ObsidianOpener

	rows   []boardRow
	cursor int

	// transition picker state
	picking    bool
	targets    []domain.Status
	pickCursor int
}

// NewBoardModel creates a new board model
func NewBoardModel(repo ports.EntityRepository, opener ports.ObsidianOpener) *BoardModel {
	return &BoardModel{repo: repo, opener: opener}
}

// Init initializes the board
func (m *BoardModel) Init() tea.Cmd {
	return m.loadEntities
}

type entitiesLoadedMsg struct {
	rows []boardRow
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

func (m *BoardModel) loadEntities() tea.Msg {
	entities, err := m.repo.ListAll()
	if err != nil {
		return errMsg{err}
	}
	return entitiesLoadedMsg{rows: buildRows(entities)}
}

// buildRows orders entities into board sections by display status,
// keeping the repository's id order within each section.
func buildRows(entities []*domain.Entity) []boardRow {
	resolve := domain.ResolverFromSlice(entities)
	var rows []boardRow
	for _, status := range SectionOrder {
		for _, e := range entities {
			if e.DisplayStatus(resolve) == status {
				rows = append(rows, boardRow{entity: e, display: status})
			}
		}
	}
	return rows
}

// Update handles messages for the board
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case entitiesLoadedMsg:
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.loadEntities

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, BoardKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BoardKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Transition):
			if ent := m.selectedEntity(); ent != nil {
				targets, err := commands.AvailableTransitions(m.repo, ent.ID)
				if err != nil {
					m.SetMessage(err.Error(), true)
					return m, nil
				}
				if len(targets) == 0 {
					m.SetMessage(fmt.Sprintf("%s has no available transitions", ent.ID), true)
					return m, nil
				}
				m.picking = true
				m.targets = targets
				m.pickCursor = 0
			}
			return m, nil

		case key.Matches(msg, BoardKeys.CopyID):
			if ent := m.selectedEntity(); ent != nil {
				if err := clipboard.WriteAll(ent.ID); err != nil {
					m.SetMessage(err.Error(), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied %s", ent.ID), false)
				}
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Open):
			if ent := m.selectedEntity(); ent != nil && m.opener != nil {
				return m, m.openEntity(ent)
			}
			return m, nil

		case key.Matches(msg, BoardKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BoardKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BoardModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, BoardKeys.Cancel):
		m.picking = false
		return m, nil

	case key.Matches(msg, BoardKeys.Up):
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil

	case key.Matches(msg, BoardKeys.Down):
		if m.pickCursor < len(m.targets)-1 {
			m.pickCursor++
		}
		return m, nil

	case key.Matches(msg, BoardKeys.Confirm):
		ent := m.selectedEntity()
		if ent == nil {
			m.picking = false
			return m, nil
		}
		target := m.targets[m.pickCursor]
		m.picking = false
		return m, m.applyTransition(ent.ID, target)
	}
	return m, nil
}

func (m *BoardModel) applyTransition(id string, target domain.Status) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewTransitionCommand(m.repo, id, target)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *BoardModel) openEntity(ent *domain.Entity) tea.Cmd {
	return func() tea.Msg {
		if err := m.opener.OpenFile(ent.Path); err != nil {
			return errMsg{err}
		}
		return successMsg{fmt.Sprintf("Opened %s", ent.ID)}
	}
}

func (m *BoardModel) selectedEntity() *domain.Entity {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].entity
	}
	return nil
}

// View renders the board
func (m *BoardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Planvault"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Milestones, stories, and tasks"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("The vault is empty."))
		b.WriteString("\n")
	}

	var section domain.Status
	for i, row := range m.rows {
		if i == 0 || row.display != section {
			section = row.display
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.SectionHeader.Render(string(section)))
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.picking {
		b.WriteString("\n")
		b.WriteString(m.renderPicker())
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BoardModel) renderRow(row boardRow, selected bool) string {
	ent := row.entity
	text := fmt.Sprintf("%s  %s", ent.ID, ent.Title)

	var style lipgloss.Style
	switch ent.Type {
	case domain.TypeMilestone:
		style = styles.RowMilestone
	case domain.TypeStory:
		style = styles.RowStory
	default:
		style = styles.RowTask
	}

	styledText := style.Render(text)
	if selected {
		styledText = styles.RowSelected.Render(text)
	}

	badge := styles.BadgeStyle(row.display).Render("[" + string(row.display) + "]")
	return fmt.Sprintf("  %s %s", badge, styledText)
}

func (m *BoardModel) renderPicker() string {
	ent := m.selectedEntity()
	if ent == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("Set %s status:", ent.ID)))
	b.WriteString("\n")
	for i, target := range m.targets {
		line := "  " + string(target)
		if i == m.pickCursor {
			line = styles.RowSelected.Render("> " + string(target))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpDesc.Render("enter apply · esc cancel"))
	return b.String()
}

func (m *BoardModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"s", "set status"},
		{"c", "copy id"},
		{"o", "open"},
		{"r", "reload"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// Reload reloads the board from disk
func (m *BoardModel) Reload() tea.Cmd {
	m.rows = nil
	m.cursor = 0
	m.picking = false
	return m.loadEntities
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBoardMsg struct{}
