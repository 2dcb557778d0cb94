// Package ui provides terminal output styles for the fsk CLI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for CLI output.
type Theme struct {
	Primary lipgloss.Color // headers and title matches
	Accent  lipgloss.Color // list bullets and content-match markers
	Dim     lipgloss.Color // previews, separators, empty-state text
	Error   lipgloss.Color
}

// DefaultTheme is the default color scheme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("6"),
	Accent:  lipgloss.Color("4"),
	Dim:     lipgloss.Color("8"),
	Error:   lipgloss.Color("1"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Header  lipgloss.Style
	Title   lipgloss.Style
	Bullet  lipgloss.Style
	Marker  lipgloss.Style
	Preview lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Title:   lipgloss.NewStyle().Bold(true),
		Bullet:  lipgloss.NewStyle().Foreground(t.Accent),
		Marker:  lipgloss.NewStyle().Foreground(t.Accent),
		Preview: lipgloss.NewStyle().Italic(true).Foreground(t.Dim),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// Rule renders a dim horizontal separator of the given width.
func (s Styles) Rule(width int) string {
	return s.Dim.Render(strings.Repeat("─", width))
}
