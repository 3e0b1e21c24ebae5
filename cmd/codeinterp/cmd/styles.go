package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// styles renders terminal messages, or passes them through unchanged when
// color is off.
type styles struct {
	enabled bool
}

func (s styles) render(style lipgloss.Style, msg string) string {
	if !s.enabled {
		return msg
	}
	return style.Render(msg)
}

func (s styles) Error(msg string) string   { return s.render(errorStyle, msg) }
func (s styles) Success(msg string) string { return s.render(successStyle, msg) }
func (s styles) Muted(msg string) string   { return s.render(mutedStyle, msg) }
