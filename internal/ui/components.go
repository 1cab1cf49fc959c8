package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows the view title and state with a spinner while the event
// loop runs
type StatusBar struct {
	Width       int
	Title       string
	Status      string
	Visible     bool
	ShowSpinner bool
	spinner     spinner.Model
}

// NewStatusBar creates a new status bar
func NewStatusBar(title string) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		FPS:    time.Second / 10,
	}
	s.Style = SpinnerStyle

	return &StatusBar{
		Title:       title,
		ShowSpinner: true,
		spinner:     s,
	}
}

// Init implements tea.Model
func (s *StatusBar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *StatusBar) Update(msg tea.Msg) (*StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.WindowSizeMsg:
		s.Width = msg.Width
	}
	return s, nil
}

// View renders the status bar
func (s *StatusBar) View() string {
	title := TitleStyle.Render(s.Title)

	status := s.Status
	if s.ShowSpinner {
		status = s.spinner.View() + " " + s.Status
	}
	statusFormatted := FormatStatus(s.Visible, status)

	gap := max(s.Width-lipgloss.Width(title)-lipgloss.Width(statusFormatted)-4, 1)
	line := title + strings.Repeat(" ", gap) + statusFormatted

	return BoxStyle.Width(max(s.Width-2, 0)).Render(line)
}

// Control represents a keyboard control
type Control struct {
	Key  string
	Desc string
}

// ControlsHelp renders key bindings on one line
type ControlsHelp struct {
	Controls []Control
}

// View renders the controls help
func (c *ControlsHelp) View() string {
	parts := make([]string, len(c.Controls))
	for i, ctrl := range c.Controls {
		parts[i] = FormatControl(ctrl.Key, ctrl.Desc)
	}
	return SubtleStyle.Render(strings.Join(parts, "  "))
}
