package driven

import "github.com/custodia-labs/pagesplit/internal/core/domain"

// RuleSource reads an ordered rule set from storage.
// Rules are only ever read; the core never writes them back.
type RuleSource interface {
	// LoadRules returns the compiled rules in file order.
	LoadRules(path string) ([]domain.Rule, error)
}
