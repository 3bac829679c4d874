package services

import (
	"fmt"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// Ensure RuleService implements the interface.
var _ driving.RuleService = (*RuleService)(nil)

// defaultRules identify pages of school exam and timetable batches.
// Order matters: the first rule that matches supplies the primary identifier.
var defaultRules = []domain.Rule{
	domain.MustRule("Admission Number", `([0-9]{5,6}).*(Admission Number)`, 1, domain.RuleKindNumeric),
	domain.MustRule("Candidate Number", `([0-9]{4})(Candidate Number)`, 1, domain.RuleKindNumeric),
	domain.MustRule("UPN", `(UPN:?)[\s\S]:?([a-zA-Z0-9]+)`, 2, domain.RuleKindAlphanumeric),
	domain.MustRule("ULN", `(ULN:?)[\s\S]:?([0-9]+)`, 2, domain.RuleKindNumeric),
	domain.MustRule("Candidate Number", `([0-9]{4})\s[\s\S]*[0-9]{10}[a-zA-Z][\s\S]*(Candidate Number)`, 1, domain.RuleKindNumeric),
	domain.MustRule("ULN", `([0-9]{10})(ULN)`, 1, domain.RuleKindNumeric),
	domain.MustRule("Name", `([a-zA-Z]+,\s[a-zA-Z]+)(Name)`, 1, domain.RuleKindAlphanumeric),
}

// RuleService provides rule lists from the built-in table or a rule file.
type RuleService struct {
	source driven.RuleSource
}

// NewRuleService creates a rule service. source may be nil, in which
// case only the built-in rules are available.
func NewRuleService(source driven.RuleSource) *RuleService {
	return &RuleService{source: source}
}

// Defaults returns a copy of the built-in rules.
func (s *RuleService) Defaults() []domain.Rule {
	out := make([]domain.Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Load reads rules from path, or returns the defaults for an empty path.
func (s *RuleService) Load(path string) ([]domain.Rule, error) {
	if path == "" {
		return s.Defaults(), nil
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: rule files are not supported", domain.ErrConfiguration)
	}

	rules, err := s.source.LoadRules(path)
	if err != nil {
		return nil, fmt.Errorf("load rules %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: %s defines no rules", domain.ErrConfiguration, path)
	}
	return rules, nil
}

// Validate reports rules whose capture group exceeds the groups the pattern
// declares. Such rules fail on the first page they match.
func (s *RuleService) Validate(rules []domain.Rule) []driving.RuleProblem {
	var problems []driving.RuleProblem
	for i, r := range rules {
		switch {
		case !r.Compiled():
			problems = append(problems, driving.RuleProblem{
				Position: i + 1,
				Label:    r.Label,
				Reason:   "pattern was not compiled",
			})
		case r.Group > r.Groups():
			problems = append(problems, driving.RuleProblem{
				Position: i + 1,
				Label:    r.Label,
				Reason:   fmt.Sprintf("capture group %d requested but pattern has %d", r.Group, r.Groups()),
			})
		}
	}
	return problems
}
