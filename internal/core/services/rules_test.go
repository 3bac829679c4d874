package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// mockRuleSource is a test double for driven.RuleSource.
type mockRuleSource struct {
	rules []domain.Rule
	err   error
	paths []string
}

func (m *mockRuleSource) LoadRules(path string) ([]domain.Rule, error) {
	m.paths = append(m.paths, path)
	return m.rules, m.err
}

func TestRuleService_Defaults(t *testing.T) {
	svc := NewRuleService(nil)

	rules := svc.Defaults()

	require.Len(t, rules, 7)
	labels := make([]string, 0, len(rules))
	for _, r := range rules {
		assert.True(t, r.Compiled())
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{
		"Admission Number", "Candidate Number", "UPN", "ULN",
		"Candidate Number", "ULN", "Name",
	}, labels)
}

func TestRuleService_Defaults_ReturnsCopy(t *testing.T) {
	svc := NewRuleService(nil)

	rules := svc.Defaults()
	rules[0] = domain.Rule{}

	assert.Equal(t, "Admission Number", svc.Defaults()[0].Label)
}

func TestRuleService_Defaults_AreValid(t *testing.T) {
	svc := NewRuleService(nil)
	assert.Empty(t, svc.Validate(svc.Defaults()))
}

func TestRuleService_Load_EmptyPathUsesDefaults(t *testing.T) {
	source := &mockRuleSource{}
	svc := NewRuleService(source)

	rules, err := svc.Load("")

	require.NoError(t, err)
	assert.Len(t, rules, 7)
	assert.Empty(t, source.paths, "source not consulted")
}

func TestRuleService_Load_FromSource(t *testing.T) {
	source := &mockRuleSource{rules: []domain.Rule{admissionRule}}
	svc := NewRuleService(source)

	rules, err := svc.Load("rules.toml")

	require.NoError(t, err)
	assert.Equal(t, []domain.Rule{admissionRule}, rules)
	assert.Equal(t, []string{"rules.toml"}, source.paths)
}

func TestRuleService_Load_Errors(t *testing.T) {
	boom := errors.New("read failed")

	t.Run("no source", func(t *testing.T) {
		_, err := NewRuleService(nil).Load("rules.toml")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("source error", func(t *testing.T) {
		_, err := NewRuleService(&mockRuleSource{err: boom}).Load("rules.toml")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewRuleService(&mockRuleSource{}).Load("rules.toml")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestRuleService_Validate(t *testing.T) {
	svc := NewRuleService(nil)
	rules := []domain.Rule{
		admissionRule,
		domain.MustRule("too far", `([0-9]+)`, 3, ""),
		{Label: "raw"},
	}

	problems := svc.Validate(rules)

	require.Len(t, problems, 2)
	assert.Equal(t, 2, problems[0].Position)
	assert.Equal(t, "too far", problems[0].Label)
	assert.Contains(t, problems[0].Reason, "capture group 3")
	assert.Equal(t, 3, problems[1].Position)
}
