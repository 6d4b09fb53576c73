// Package tui provides the interactive launcher window: a query box on
// top, the icon-strip lane below it, and the main result list under
// that, all updated live as sources report.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
)

// maxVisibleRows caps the rendered result list.
const maxVisibleRows = 12

// snapshotMsg carries one pipeline snapshot into the update loop.
type snapshotMsg driving.Snapshot

// snapshotsClosedMsg signals the subscription ended.
type snapshotsClosedMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	controller  driving.SearchController
	snapshots   <-chan driving.Snapshot
	unsubscribe func()

	input    textinput.Model
	snap     driving.Snapshot
	selected int
	width    int
	styles   styles
	err      error
}

// styles holds the pre-built lipgloss styles.
type styles struct {
	title    lipgloss.Style
	lane     lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
}

// defaultStyles builds the launcher palette.
func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		lane:     lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		item:     lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// NewModel creates the root model over the wired pipeline.
func NewModel(controller driving.SearchController) Model {
	input := textinput.New()
	input.Placeholder = "Search apps, files, notes..."
	input.Focus()

	snapshots, unsubscribe := controller.Subscribe()

	return Model{
		controller:  controller,
		snapshots:   snapshots,
		unsubscribe: unsubscribe,
		input:       input,
		styles:      defaultStyles(),
	}
}

// Init starts the snapshot pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForSnapshot())
}

// waitForSnapshot blocks on the subscription for the next snapshot.
func (m Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.snapshots
		if !ok {
			return snapshotsClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case snapshotMsg:
		m.snap = driving.Snapshot(msg)
		if m.selected >= len(m.snap.Vertical) {
			m.selected = 0
		}
		return m, m.waitForSnapshot()

	case snapshotsClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.unsubscribe()
			return m, tea.Quit

		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case tea.KeyDown:
			if m.selected < len(m.snap.Vertical)-1 {
				m.selected++
			}
			return m, nil

		case tea.KeyEnter:
			return m, m.launchSelected()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.controller.OnQueryChange(m.input.Value())
	}
	return m, cmd
}

// launchSelected records the launch of the highlighted result.
func (m Model) launchSelected() tea.Cmd {
	if m.selected >= len(m.snap.Vertical) {
		return nil
	}
	result := m.snap.Vertical[m.selected].SearchResult
	return func() tea.Msg {
		// Recording failures are invisible to the user; ranking just
		// misses one signal.
		m.controller.RecordLaunch(context.Background(), result) //nolint:errcheck
		return nil
	}
}

// View renders the launcher window.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("ReFast"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.snap.Horizontal) > 0 {
		names := make([]string, 0, len(m.snap.Horizontal))
		for _, r := range m.snap.Horizontal {
			names = append(names, r.DisplayName)
		}
		b.WriteString(m.styles.lane.Render("  " + strings.Join(names, "   ")))
		b.WriteString("\n\n")
	}

	rows := m.snap.Vertical
	if len(rows) > maxVisibleRows {
		rows = rows[:maxVisibleRows]
	}
	for i, r := range rows {
		line := fmt.Sprintf("  %s  %s", r.DisplayName, m.styles.muted.Render(r.Path))
		if i == m.selected {
			line = m.styles.selected.Render("> " + r.DisplayName + "  " + r.Path)
		} else {
			line = m.styles.item.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.statusLine()))
	b.WriteString("\n")
	return b.String()
}

// statusLine summarises pipeline progress for the footer.
func (m Model) statusLine() string {
	var parts []string
	if m.snap.Status.IsSearchingExternal {
		parts = append(parts, "searching index...")
	} else if !m.snap.Status.ExternalAvailable && m.input.Value() != "" {
		parts = append(parts, "file index unavailable")
	}
	if m.snap.Status.ExternalTotalCount > 0 {
		parts = append(parts, fmt.Sprintf("%d indexed hits", m.snap.Status.ExternalTotalCount))
	}
	if len(parts) == 0 {
		if m.snap.Complete {
			return fmt.Sprintf("%d results", len(m.snap.Vertical)+len(m.snap.Horizontal))
		}
		return "type to search, esc to quit"
	}
	return strings.Join(parts, "  ·  ")
}

// Run starts the TUI and blocks until it exits.
func Run(controller driving.SearchController) error {
	model := NewModel(controller)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err := program.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
