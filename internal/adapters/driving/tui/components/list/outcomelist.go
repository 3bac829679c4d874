// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// OutcomeList displays the pages of a run in a scrollable list.
type OutcomeList struct {
	outcomes []domain.PageOutcome
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOutcomeList creates a new outcome list component.
func NewOutcomeList(s *styles.Styles) *OutcomeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OutcomeList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the outcome list.
func (l *OutcomeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *OutcomeList) Update(msg tea.Msg) (*OutcomeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of pages.
func (l *OutcomeList) View() string {
	if len(l.outcomes) == 0 {
		return l.styles.Muted.Render("No pages")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.outcomes) {
		end = len(l.outcomes)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderOutcome(i, l.outcomes[i]))
	}
	if end < len(l.outcomes) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(l.outcomes)-end)))
	}

	return strings.Join(lines, "\n")
}

func (l *OutcomeList) renderOutcome(index int, o domain.PageOutcome) string {
	indicator := "  "
	nameStyle := l.styles.Normal
	if index == l.selected {
		indicator = "> "
		nameStyle = l.styles.Selected
	}

	name := o.Filename
	maxLen := l.width - 16
	if maxLen < 10 {
		maxLen = 10
	}
	if len(name) > maxLen {
		name = name[:maxLen-3] + "..."
	}

	mark := l.styles.Success.Render("ok  ")
	if !o.Resolved {
		mark = l.styles.Error.Render("FAIL")
	}

	page := l.styles.Muted.Render(fmt.Sprintf("p%-4d", o.Index+1))
	return indicator + mark + " " + page + " " + nameStyle.Render(name)
}

// SetOutcomes replaces the list contents.
func (l *OutcomeList) SetOutcomes(outcomes []domain.PageOutcome) {
	l.outcomes = outcomes
	l.selected = 0
}

// Outcomes returns the current outcomes.
func (l *OutcomeList) Outcomes() []domain.PageOutcome {
	return l.outcomes
}

// Selected returns the index of the selected page.
func (l *OutcomeList) Selected() int {
	return l.selected
}

// MoveUp moves selection up.
func (l *OutcomeList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *OutcomeList) MoveDown() {
	if l.selected < len(l.outcomes)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions. height is in rows.
func (l *OutcomeList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of pages.
func (l *OutcomeList) Count() int {
	return len(l.outcomes)
}
