package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
)

// Ensure RuleFile implements the interface.
var _ driven.RuleSource = (*RuleFile)(nil)

// RuleFile loads rule sets from TOML files of the form:
//
//	[[rules]]
//	label   = "Admission Number"
//	pattern = '([0-9]{5,6}).*(Admission Number)'
//	group   = 1
//	kind    = "numeric"
//
// group defaults to 1 when omitted. Unknown fields are rejected.
type RuleFile struct{}

// NewRuleFile creates a rule file loader.
func NewRuleFile() *RuleFile {
	return &RuleFile{}
}

type ruleDocument struct {
	Rules []ruleEntry `toml:"rules"`
}

type ruleEntry struct {
	Label   string `toml:"label"`
	Pattern string `toml:"pattern"`
	Group   *int   `toml:"group"`
	Kind    string `toml:"kind"`
}

// LoadRules reads and compiles the rules in path, in file order.
func (f *RuleFile) LoadRules(path string) ([]domain.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return ParseRules(data)
}

// ParseRules compiles a TOML rule document.
func ParseRules(data []byte) ([]domain.Rule, error) {
	var doc ruleDocument
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", domain.ErrConfiguration, row, col, decErr.Error())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	rules := make([]domain.Rule, 0, len(doc.Rules))
	for i, entry := range doc.Rules {
		if entry.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %d: pattern is required", domain.ErrInvalidRule, i+1)
		}
		label := entry.Label
		if label == "" {
			label = fmt.Sprintf("rule %d", i+1)
		}
		group := 1
		if entry.Group != nil {
			group = *entry.Group
		}

		rule, err := domain.NewRule(label, entry.Pattern, group, domain.RuleKind(entry.Kind))
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
