package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar(t *testing.T) {
	t.Run("creates new status bar", func(t *testing.T) {
		sb := NewStatusBar("viewkit")
		assert.Equal(t, "viewkit", sb.Title)
		assert.True(t, sb.ShowSpinner)
		assert.NotNil(t, sb.Init())
	})

	t.Run("renders status bar", func(t *testing.T) {
		sb := NewStatusBar("viewkit")
		sb, _ = sb.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		sb.Status = "640x400"
		sb.Visible = true

		view := sb.View()
		assert.Equal(t, 80, sb.Width)
		assert.Contains(t, view, "viewkit")
		assert.Contains(t, view, "640x400")
		assert.Contains(t, view, "●")
	})

	t.Run("renders in a narrow terminal", func(t *testing.T) {
		sb := NewStatusBar("viewkit")
		sb.ShowSpinner = false
		sb.Status = "hidden"
		assert.Contains(t, sb.View(), "hidden")
	})
}

func TestControlsHelp(t *testing.T) {
	help := ControlsHelp{Controls: []Control{{Key: "q", Desc: "quit"}, {Key: "c", Desc: "clear"}}}
	view := help.View()
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "clear")
}
