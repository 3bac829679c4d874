// Package form provides the split form view for the TUI.
// It asks for the source document, the destination folder and the prefix.
package form

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/tui/styles"
)

// Field positions.
const (
	FieldSource = iota
	FieldDestination
	FieldPrefix
)

// View is the split form.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	fields []*input.Field
	focus  int
	width  int
	height int
}

// NewView creates the form with prefix pre-filled.
func NewView(s *styles.Styles, prefix string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		fields: []*input.Field{
			input.NewField(s, "Source PDF", "/path/to/batch.pdf"),
			input.NewField(s, "Destination", "/path/to/output"),
			input.NewField(s, "Prefix", "ExamTimetable"),
		},
		width:  80,
		height: 24,
	}
	v.fields[FieldPrefix].SetValue(prefix)
	v.fields[FieldSource].Focus()
	return v
}

// Init initialises the form view.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Init()
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(key.String(), v.keymap.Next):
		return v, v.setFocus(v.focus + 1)
	case keymap.Matches(key.String(), v.keymap.Prev):
		return v, v.setFocus(v.focus - 1)
	case keymap.Matches(key.String(), v.keymap.Submit):
		if v.focus < len(v.fields)-1 {
			return v, v.setFocus(v.focus + 1)
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	v.fields[v.focus].SetError("")
	return v, cmd
}

func (v *View) setFocus(i int) tea.Cmd {
	if i < 0 || i >= len(v.fields) {
		return nil
	}
	v.fields[v.focus].Blur()
	v.focus = i
	return v.fields[v.focus].Focus()
}

// submit validates the fields and moves focus to the first invalid one.
func (v *View) submit() tea.Cmd {
	if !v.Validate() {
		for i, f := range v.fields {
			if f.Error() != "" {
				return v.setFocus(i)
			}
		}
	}

	submitted := messages.FormSubmitted{
		Source:      v.fields[FieldSource].Value(),
		Destination: v.fields[FieldDestination].Value(),
		Prefix:      v.fields[FieldPrefix].Value(),
	}
	return func() tea.Msg { return submitted }
}

// Validate checks the fields and sets a message on each invalid one.
func (v *View) Validate() bool {
	valid := true
	fail := func(i int, msg string) {
		v.fields[i].SetError(msg)
		valid = false
	}

	source := v.fields[FieldSource].Value()
	switch info, err := os.Stat(source); {
	case source == "":
		fail(FieldSource, "choose a PDF to split")
	case err != nil:
		fail(FieldSource, "file not found")
	case info.IsDir():
		fail(FieldSource, "this is a folder, not a file")
	default:
		v.fields[FieldSource].SetError("")
	}

	dest := v.fields[FieldDestination].Value()
	switch info, err := os.Stat(dest); {
	case dest == "":
		fail(FieldDestination, "choose a folder for the pages")
	case err != nil:
		fail(FieldDestination, "folder not found")
	case !info.IsDir():
		fail(FieldDestination, "this is a file, not a folder")
	default:
		v.fields[FieldDestination].SetError("")
	}

	if strings.TrimSpace(v.fields[FieldPrefix].Value()) == "" {
		fail(FieldPrefix, "a prefix is required")
	} else {
		v.fields[FieldPrefix].SetError("")
	}

	return valid
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("pagesplit"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Split a PDF into one named file per page"))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	return b.String()
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Field returns the field at index i.
func (v *View) Field(i int) *input.Field {
	return v.fields[i]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}
