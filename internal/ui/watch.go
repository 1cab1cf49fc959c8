package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/viewkit/internal/demo"
)

// Messages the event loop sends to a WatchModel
type (
	// ActivityMsg reports one thing the view handled
	ActivityMsg struct{ Activity demo.Activity }
	// StatsMsg carries a fresh snapshot of the app's counters
	StatsMsg struct{ Stats demo.Stats }
	// VisibleMsg reports whether the view is mapped
	VisibleMsg bool
	// LoopDoneMsg is sent once when the event loop has returned
	LoopDoneMsg struct{ Err error }
)

const (
	watchHeaderLines = 3
	watchFooterLines = 4
	maxActivityLines = 1000
)

// WatchModel is a live activity monitor for a running view
type WatchModel struct {
	session  *Session
	status   *StatusBar
	viewport viewport.Model
	controls ControlsHelp

	history *History
	stats   demo.Stats
	done    bool
	err     error

	width  int
	height int

	// OnQuit is called from OnShutdown. It should stop the event loop.
	OnQuit func()
}

// NewWatchModel creates a watch model titled after the view
func NewWatchModel(title string) *WatchModel {
	m := &WatchModel{
		status:  NewStatusBar(title),
		history: NewHistory(maxActivityLines),
		controls: ControlsHelp{Controls: []Control{
			{Key: "q", Desc: "quit"},
			{Key: "c", Desc: "clear"},
			{Key: "↑/↓", Desc: "scroll"},
		}},
	}
	m.status.Status = "starting"
	m.viewport = viewport.New(0, 0)
	m.resize(80, 24)
	return m
}

// SetSession implements UIModel
func (m *WatchModel) SetSession(s *Session) {
	m.session = s
}

// OnShutdown implements UIModel
func (m *WatchModel) OnShutdown() error {
	if m.OnQuit != nil {
		m.OnQuit()
	}
	return nil
}

// Init implements tea.Model
func (m *WatchModel) Init() tea.Cmd {
	return m.status.Init()
}

// Update implements tea.Model
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, m.quit()
		case "c":
			m.history.Clear()
			m.viewport.SetContent("")
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ActivityMsg:
		m.add(Entry{At: msg.Activity.At, Kind: msg.Activity.Kind, Text: msg.Activity.Detail})
		m.status.Status = m.sizeStatus()
		return m, nil

	case StatsMsg:
		m.stats = msg.Stats
		m.status.Status = m.sizeStatus()
		return m, nil

	case VisibleMsg:
		m.status.Visible = bool(msg)
		return m, nil

	case LoopDoneMsg:
		m.done = true
		m.err = msg.Err
		m.status.ShowSpinner = false
		m.status.Visible = false
		if msg.Err != nil {
			m.status.Status = "failed"
			m.add(Entry{At: time.Now(), Kind: kindFailed, Text: msg.Err.Error()})
		} else {
			m.status.Status = "closed"
			m.add(Entry{At: time.Now(), Kind: kindClosed, Text: "view closed"})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.status, cmd = m.status.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *WatchModel) View() string {
	var b strings.Builder

	b.WriteString(m.status.View())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(CreateSeparator(m.width, ""))
	b.WriteString("\n")
	b.WriteString(m.countsLine())
	b.WriteString("\n")
	if m.done {
		b.WriteString(WarningStyle.Render(IconWarning + " View closed. Press q to exit."))
		b.WriteString("\n")
	}
	b.WriteString(m.controls.View())

	return b.String()
}

// Done reports whether the event loop has returned and with what error
func (m *WatchModel) Done() (bool, error) {
	return m.done, m.err
}

// Lines renders the entries currently held
func (m *WatchModel) Lines() []string {
	entries := m.history.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = formatEntry(e)
	}
	return lines
}

func (m *WatchModel) quit() tea.Cmd {
	if m.session != nil {
		if cmd := m.session.Close(); cmd != nil {
			return cmd
		}
	}
	return tea.Quit
}

func (m *WatchModel) resize(width, height int) {
	m.width, m.height = width, height
	m.status.Width = width
	m.viewport.Width = width
	m.viewport.Height = max(height-watchHeaderLines-watchFooterLines, 1)
	m.viewport.SetContent(strings.Join(m.Lines(), "\n"))
	m.viewport.GotoBottom()
}

func (m *WatchModel) add(e Entry) {
	m.history.Add(e)
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(m.Lines(), "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *WatchModel) sizeStatus() string {
	s := fmt.Sprintf("%.0fx%.0f", m.stats.Size.W, m.stats.Size.H)
	if m.stats.Focused {
		s += " focused"
	}
	return s
}

func (m *WatchModel) countsLine() string {
	total := 0
	for _, n := range m.stats.Events {
		total += n
	}
	parts := []string{
		FormatCount("events", total),
		FormatCount("exposes", m.stats.Exposes),
		FormatCount("resizes", m.stats.Resizes),
	}

	ids := make([]uintptr, 0, len(m.stats.Ticks))
	for id := range m.stats.Ticks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		parts = append(parts, FormatCount(fmt.Sprintf("timer %d", id), m.stats.Ticks[id]))
	}

	if n := m.history.Dropped(); n > 0 {
		parts = append(parts, FormatCount("scrolled off", n))
	}

	return strings.Join(parts, "  ")
}

// Kinds of entries the monitor adds itself
const (
	kindClosed = "closed"
	kindFailed = "failed"
)

func formatEntry(e Entry) string {
	switch e.Kind {
	case kindClosed:
		return FormatResult(true, "event loop", e.Text)
	case kindFailed:
		return FormatResult(false, "event loop", e.Text)
	}
	return FormatActivityLine(demo.Activity{Kind: e.Kind, Detail: e.Text, At: e.At})
}

// FormatActivityLine renders an activity for the watch log
func FormatActivityLine(a demo.Activity) string {
	line := ActivityTimeStyle.Render(a.At.Format("15:04:05.000")) + " " + ActivityKindStyle.Render(a.Kind)
	if a.Detail != "" {
		line += " " + TextStyle.Render(a.Detail)
	}
	return line
}

// PlainActivityLine renders an activity without styling, for output that
// is not a terminal
func PlainActivityLine(a demo.Activity) string {
	return strings.TrimRight(fmt.Sprintf("%s %-15s %s", a.At.Format("15:04:05.000"), a.Kind, a.Detail), " ")
}
