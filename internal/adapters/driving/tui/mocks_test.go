package tui

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

type mockSplitService struct {
	result  *domain.BatchResult
	err     error
	lastReq domain.SplitRequest
	calls   int
}

func (m *mockSplitService) Split(_ context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	m.lastReq = req
	m.calls++
	return m.result, m.err
}

func (m *mockSplitService) Plan(_ context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockSplitService) Inspect(_ context.Context, _ string, _ int, _ []domain.Rule) (*domain.PageInspection, error) {
	return nil, m.err
}

type mockRuleService struct {
	rules    []domain.Rule
	err      error
	lastPath string
}

func (m *mockRuleService) Defaults() []domain.Rule {
	return m.rules
}

func (m *mockRuleService) Load(path string) ([]domain.Rule, error) {
	m.lastPath = path
	return m.rules, m.err
}

func (m *mockRuleService) Validate(_ []domain.Rule) []driving.RuleProblem {
	return nil
}

type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func newTestPorts() *Ports {
	return &Ports{
		Split: &mockSplitService{},
		Rules: &mockRuleService{rules: []domain.Rule{
			domain.MustRule("Admission Number", `([0-9]{5})`, 1, domain.RuleKindNumeric),
		}},
	}
}
