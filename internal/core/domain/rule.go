package domain

import (
	"fmt"
	"regexp"
)

// RuleKind tags the expected shape of an identifier.
// It is carried as metadata only; resolution never consults it.
type RuleKind string

// Known rule kinds.
const (
	RuleKindNumeric      RuleKind = "numeric"
	RuleKindAlphanumeric RuleKind = "alphanumeric"
	RuleKindAlpha        RuleKind = "alpha"
)

// IsValid returns true if the kind is recognised or unset.
func (k RuleKind) IsValid() bool {
	switch k {
	case "", RuleKindNumeric, RuleKindAlphanumeric, RuleKindAlpha:
		return true
	default:
		return false
	}
}

// Rule is a labelled pattern with a designated capture group.
// Rules are built once with NewRule and never modified afterwards.
type Rule struct {
	// Label is a human-readable name. It does not appear in output names.
	Label string

	// Pattern is the source expression as configured.
	Pattern string

	// Group is the capture group holding the identifier text (1-based).
	Group int

	// Kind is inert metadata describing the identifier.
	Kind RuleKind

	re *regexp.Regexp
}

// NewRule compiles pattern in dot-matches-newline mode.
// A group index above the pattern's group count is not rejected here;
// it surfaces when a match is attempted.
func NewRule(label, pattern string, group int, kind RuleKind) (Rule, error) {
	if group < 1 {
		return Rule{}, fmt.Errorf("%w: %s: capture group must be positive, got %d", ErrInvalidRule, label, group)
	}
	if !kind.IsValid() {
		return Rule{}, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRule, label, kind)
	}

	re, err := regexp.Compile("(?s)" + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s: %w", ErrInvalidRule, label, err)
	}

	return Rule{
		Label:   label,
		Pattern: pattern,
		Group:   group,
		Kind:    kind,
		re:      re,
	}, nil
}

// MustRule is like NewRule but panics on error.
// It is intended for package-level rule tables.
func MustRule(label, pattern string, group int, kind RuleKind) Rule {
	r, err := NewRule(label, pattern, group, kind)
	if err != nil {
		panic(err)
	}
	return r
}

// Compiled reports whether the rule was built through NewRule.
func (r Rule) Compiled() bool {
	return r.re != nil
}

// Groups returns the number of capture groups the pattern declares.
func (r Rule) Groups() int {
	if r.re == nil {
		return 0
	}
	return r.re.NumSubexp()
}

// Match is the outcome of applying one rule to a text.
type Match struct {
	// Value is the captured group text, untrimmed.
	Value string

	// Participated is false when the group exists but took no part in the match.
	Participated bool
}

// FindFirst applies the rule to text and returns the leftmost match.
// ok is false when the pattern does not match. An error wrapping
// ErrInvalidRule is returned when the match has no group at r.Group.
func (r Rule) FindFirst(text string) (m Match, ok bool, err error) {
	if r.re == nil {
		return Match{}, false, fmt.Errorf("%w: %s: rule was not compiled", ErrInvalidRule, r.Label)
	}

	loc := r.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false, nil
	}

	if 2*r.Group+1 >= len(loc) {
		return Match{}, true, fmt.Errorf("%w: %s: capture group %d does not exist (pattern has %d)",
			ErrInvalidRule, r.Label, r.Group, len(loc)/2-1)
	}

	start, end := loc[2*r.Group], loc[2*r.Group+1]
	if start < 0 {
		return Match{}, true, nil
	}
	return Match{Value: text[start:end], Participated: true}, true, nil
}
