// Package tui renders the wizard's progress indicator for terminals and runs
// an interactive version of the wizard.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the stepper and the step forms.
var (
	ColorAccent = lipgloss.Color("#fe8019")
	ColorDone   = lipgloss.Color("#8ec07c")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	styleBranch       = lipgloss.NewStyle().Foreground(ColorDim)
	styleBranchActive = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Underline(true)
	styleStep         = lipgloss.NewStyle().Foreground(ColorDim)
	styleStepActive   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	styleStepDone     = lipgloss.NewStyle().Foreground(ColorDone)
	styleHeader       = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	styleHint         = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// huhTheme is the form theme used when colour output is enabled.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(ColorFg).Background(ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(ColorDim)
	return t
}
