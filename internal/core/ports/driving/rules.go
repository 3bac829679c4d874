package driving

import "github.com/custodia-labs/pagesplit/internal/core/domain"

// RuleProblem describes a rule that cannot work as configured.
type RuleProblem struct {
	Position int
	Label    string
	Reason   string
}

// RuleService provides the ordered rule list used for resolution.
type RuleService interface {
	// Defaults returns the built-in rule list.
	Defaults() []domain.Rule

	// Load reads a rule file, or returns the defaults when path is empty.
	Load(path string) ([]domain.Rule, error)

	// Validate reports rules whose capture group can never exist.
	Validate(rules []domain.Rule) []RuleProblem
}
