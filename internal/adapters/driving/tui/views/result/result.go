// Package result provides the run summary view for the TUI.
package result

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// View shows the outcome of a run.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	list    *list.OutcomeList
	request domain.SplitRequest
	result  *domain.BatchResult
	err     error
	width   int
	height  int
}

// NewView creates an empty result view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		list:   list.NewOutcomeList(s),
		width:  80,
		height: 24,
	}
}

// SetOutcome loads a finished run. result may be nil when err is set.
func (v *View) SetOutcome(req domain.SplitRequest, result *domain.BatchResult, err error) {
	v.request = req
	v.result = result
	v.err = err
	if result != nil {
		v.list.SetOutcomes(result.Outputs)
	} else {
		v.list.SetOutcomes(nil)
	}
}

// Init initialises the result view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case keymap.Matches(key.String(), v.keymap.Again), keymap.Matches(key.String(), v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewForm} }
	case key.String() == "q":
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the summary and the page list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Split " + v.request.Source))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("into " + v.request.Destination))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Run stopped: " + v.err.Error()))
		b.WriteString("\n")
		if v.result != nil && v.result.WrittenCount > 0 {
			b.WriteString(v.styles.Warning.Render(
				fmt.Sprintf("%d pages were written before the error and remain in the folder.", v.result.WrittenCount)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.result != nil {
		summary := fmt.Sprintf("%d pages written, %d unresolved", v.result.WrittenCount, v.result.FailedCount)
		if v.result.FailedCount > 0 {
			b.WriteString(v.styles.Warning.Render(summary))
		} else {
			b.WriteString(v.styles.Success.Render(summary))
		}
		b.WriteString("\n\n")
		b.WriteString(v.list.View())
		b.WriteString("\n")
	}

	return b.String()
}

// Err returns the run error, if any.
func (v *View) Err() error {
	return v.err
}

// Result returns the run result.
func (v *View) Result() *domain.BatchResult {
	return v.result
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, destination, summary and status bar take eight rows.
	v.list.SetDimensions(width, height-8)
}
