// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

// Available states.
const (
	StateReady     State = "ready"
	StateSplitting State = "splitting"
	StateDone      State = "done"
	StateError     State = "error"
	StateHelp      State = "help"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	written int
	failed  int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status on the left and key hints on the right.
// Hints are dropped when both do not fit in the bar width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Width includes the bar's padding, so the line gets what is left.
	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap >= 1 {
		line = left + strings.Repeat(" ", gap) + right
	}

	return s.styles.StatusBar.Width(s.width).Render(line)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSplitting:
		if s.message != "" {
			return s.styles.Muted.Render("Splitting " + s.message + "...")
		}
		return s.styles.Muted.Render("Splitting...")
	case StateDone:
		summary := fmt.Sprintf("%d written, %d unresolved", s.written, s.failed)
		if s.failed > 0 {
			return s.styles.Warning.Render(summary)
		}
		return s.styles.Success.Render(summary)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady:
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding

	switch s.state {
	case StateDone, StateError:
		bindings = s.keymap.ResultHelp()
	case StateSplitting:
		bindings = []key.Binding{s.keymap.Quit}
	default:
		bindings = s.keymap.FormHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hint := fmt.Sprintf("%s: %s", h.Key, h.Desc)
		hints = append(hints, hint)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts sets the written and unresolved page counts.
func (s *Bar) SetCounts(written, failed int) {
	s.written = written
	s.failed = failed
}

// Counts returns the written and unresolved page counts.
func (s *Bar) Counts() (written, failed int) {
	return s.written, s.failed
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.written = 0
	s.failed = 0
}
