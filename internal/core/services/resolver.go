package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// IdentifierResolver applies an ordered rule list to page text.
// It holds no state and is safe for concurrent use.
type IdentifierResolver struct{}

// NewIdentifierResolver creates a resolver.
func NewIdentifierResolver() *IdentifierResolver {
	return &IdentifierResolver{}
}

// Resolve returns page with its identifier fields populated.
//
// Every rule is attempted in order. The first rule that matches supplies
// the primary identifier; each later match appends an additional one.
// Resolution always starts from the raw text, so repeated calls agree.
func (r *IdentifierResolver) Resolve(page domain.Page, rules []domain.Rule) (domain.Page, error) {
	out := domain.NewPage(page.Index, page.Text)

	for _, rule := range rules {
		m, ok, err := rule.FindFirst(out.Text)
		if err != nil {
			return page, fmt.Errorf("page %d: %w", page.Index, err)
		}
		if !ok {
			continue
		}

		id := strings.TrimSpace(m.Value)
		if !out.Resolved {
			out.Primary = id
			out.Resolved = true
		} else {
			out.Additional = append(out.Additional, id)
		}
	}

	return out, nil
}

// Outcomes reports what each rule produces for text without composing
// identifiers. Rule errors are recorded rather than returned.
func (r *IdentifierResolver) Outcomes(text string, rules []domain.Rule) []domain.RuleOutcome {
	outcomes := make([]domain.RuleOutcome, 0, len(rules))
	for _, rule := range rules {
		o := domain.RuleOutcome{Label: rule.Label}
		m, ok, err := rule.FindFirst(text)
		switch {
		case err != nil:
			o.Err = err.Error()
		case ok:
			o.Matched = true
			o.Value = strings.TrimSpace(m.Value)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}
