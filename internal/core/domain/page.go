package domain

import (
	"strings"
	"unicode"
)

// DefaultSeparator joins the prefix and identifiers in output names.
const DefaultSeparator = '_'

// Page is one unit of the source document.
// The engine owns the underlying page artifact; Page only holds the
// text and the identifier state used for naming.
type Page struct {
	// Index is the zero-based position in the source document.
	Index int

	// Text is the extracted plain text.
	Text string

	// Primary is the identifier from the first matching rule.
	Primary string

	// Additional holds identifiers from later matching rules, in rule order.
	Additional []string

	// Resolved is true iff at least one rule matched.
	Resolved bool
}

// NewPage creates an unresolved page.
func NewPage(index int, text string) Page {
	return Page{Index: index, Text: text}
}

// Composite returns the identifier used in the output name.
// With additional identifiers all whitespace is removed from the joined
// value; a lone primary identifier is returned unchanged.
func (p Page) Composite(sep rune) string {
	if len(p.Additional) == 0 {
		return p.Primary
	}

	s := string(sep)
	joined := p.Primary + s + strings.Join(p.Additional, s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, joined)
}
