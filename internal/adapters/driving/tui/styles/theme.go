// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of the TUI.
type Theme struct {
	// Accent marks titles and the focused field.
	Accent lipgloss.Color

	// Text is the default foreground.
	Text lipgloss.Color

	// Muted is for hints and page numbers.
	Muted lipgloss.Color

	// Surface is the status bar background.
	Surface lipgloss.Color

	// Border outlines unfocused fields.
	Border lipgloss.Color

	// Success marks resolved pages.
	Success lipgloss.Color

	// Warning marks runs with unresolved pages.
	Warning lipgloss.Color

	// Error marks failed pages and errors.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#0EA5E9"),
		Text:    lipgloss.Color("#E2E8F0"),
		Muted:   lipgloss.Color("#64748B"),
		Surface: lipgloss.Color("#0F172A"),
		Border:  lipgloss.Color("#334155"),
		Success: lipgloss.Color("#4ADE80"),
		Warning: lipgloss.Color("#FBBF24"),
		Error:   lipgloss.Color("#F87171"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Muted        lipgloss.Style
	Selected     lipgloss.Style
	Label        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	InputField   lipgloss.Style
	FocusedInput lipgloss.Style
	StatusBar    lipgloss.Style
	Help         lipgloss.Style
}

// labelWidth aligns the form inputs.
const labelWidth = 14

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	field := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		theme:        theme,
		Title:        lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Normal:       lipgloss.NewStyle().Foreground(theme.Text),
		Muted:        lipgloss.NewStyle().Foreground(theme.Muted),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Label:        lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Width(labelWidth),
		Error:        lipgloss.NewStyle().Foreground(theme.Error),
		Success:      lipgloss.NewStyle().Foreground(theme.Success),
		Warning:      lipgloss.NewStyle().Foreground(theme.Warning),
		InputField:   field.BorderForeground(theme.Border),
		FocusedInput: field.BorderForeground(theme.Accent),
		StatusBar:    lipgloss.NewStyle().Foreground(theme.Muted).Background(theme.Surface).Padding(0, 1),
		Help:         lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
