package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatControl(t *testing.T) {
	tests := []struct {
		name string
		key  string
		desc string
	}{
		{name: "basic control", key: "q", desc: "Quit"},
		{name: "longer key", key: "ctrl+c", desc: "Close the view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatControl(tt.key, tt.desc)
			assert.Contains(t, got, tt.key)
			assert.Contains(t, got, tt.desc)
		})
	}
}

func TestFormatStatus(t *testing.T) {
	visible := FormatStatus(true, "Shown")
	assert.Contains(t, visible, "Shown")
	assert.Contains(t, visible, "●")

	hidden := FormatStatus(false, "Hidden")
	assert.Contains(t, hidden, "Hidden")
	assert.Contains(t, hidden, "○")
}

func TestFormatHint(t *testing.T) {
	same := FormatHint("double buffer", "true", "true")
	assert.Contains(t, same, "double buffer")
	assert.Contains(t, same, "true")
	assert.NotContains(t, same, IconArrow)

	changed := FormatHint("refresh rate", "dont-care", "60")
	assert.Contains(t, changed, "dont-care")
	assert.Contains(t, changed, IconArrow)
	assert.Contains(t, changed, "60")
}

func TestFormatResult(t *testing.T) {
	ok := FormatResult(true, "Realize", "")
	assert.Contains(t, ok, IconSuccess)
	assert.Contains(t, ok, "Realize")
	assert.NotContains(t, ok, " - ")

	failed := FormatResult(false, "Show", "bad configuration")
	assert.Contains(t, failed, IconError)
	assert.Contains(t, failed, "bad configuration")
}

func TestFormatCount(t *testing.T) {
	got := FormatCount("events", 42)
	assert.Contains(t, got, "events")
	assert.Contains(t, got, "42")
}

func TestCreateSeparator(t *testing.T) {
	assert.Equal(t, 50, strings.Count(CreateSeparator(0, ""), "─"))
	assert.Equal(t, 3, strings.Count(CreateSeparator(3, "="), "="))
}
