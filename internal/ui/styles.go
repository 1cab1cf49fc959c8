// Package ui provides consistent styling and components for the viewkit CLI
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	// Neutral colors
	ColorText      = lipgloss.Color("252") // Light gray
	ColorSubtle    = lipgloss.Color("241") // Medium gray
	ColorMuted     = lipgloss.Color("238") // Dark gray
	ColorHighlight = lipgloss.Color("255") // White

	// View state colors
	ColorVisible = ColorSuccess
	ColorHidden  = ColorSubtle
)

// Base styles - building blocks for other styles
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Component-specific styles
var (
	VisibleIndicator = lipgloss.NewStyle().
				Foreground(ColorVisible).
				Render("●")

	HiddenIndicator = lipgloss.NewStyle().
			Foreground(ColorHidden).
			Render("○")

	ControlKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ControlDescStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	HintNameStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(22)

	HintValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	HintChangedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	ActivityKindStyle = lipgloss.NewStyle().
				Foreground(ColorInfo).
				Width(15)

	ActivityTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// Icons and indicators for consistent app-wide usage
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconArrow   = "→"
)

// FormatControl renders a key binding and what it does
func FormatControl(key, desc string) string {
	return ControlKeyStyle.Render(key) + " - " + ControlDescStyle.Render(desc)
}

// FormatStatus prefixes status with the visibility indicator
func FormatStatus(visible bool, status string) string {
	indicator := HiddenIndicator
	if visible {
		indicator = VisibleIndicator
	}
	return indicator + " " + status
}

// FormatHint renders one hint row. A hint whose value changed is shown as
// "before → after".
func FormatHint(name, before, after string) string {
	value := HintValueStyle.Render(after)
	if before != after {
		value = SubtleStyle.Render(before) + " " + IconArrow + " " + HintChangedStyle.Render(after)
	}
	return HintNameStyle.Render(name) + value
}

// FormatResult renders a success or failure line
func FormatResult(ok bool, step, message string) string {
	icon := ErrorStyle.Render(IconError)
	style := ErrorStyle
	if ok {
		icon = SuccessStyle.Render(IconSuccess)
		style = SuccessStyle
	}
	line := icon + " " + step
	if message != "" {
		line += " - " + style.Render(message)
	}
	return line
}

// FormatCount renders a labelled counter
func FormatCount(label string, n int) string {
	return fmt.Sprintf("%s %s", SubtleStyle.Render(label), BoldStyle.Render(fmt.Sprint(n)))
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50 // Default width
	}
	if char == "" {
		char = "─" // Default to horizontal line
	}

	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
