package mcp

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// mockSplitService is a mock implementation of driving.SplitService.
type mockSplitService struct {
	result     *domain.BatchResult
	inspection *domain.PageInspection
	err        error

	lastReq  domain.SplitRequest
	lastPage int
	planned  bool
}

func (m *mockSplitService) Split(_ context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockSplitService) Plan(_ context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	m.lastReq = req
	m.planned = true
	return m.result, m.err
}

func (m *mockSplitService) Inspect(
	_ context.Context,
	_ string,
	page int,
	_ []domain.Rule,
) (*domain.PageInspection, error) {
	m.lastPage = page
	return m.inspection, m.err
}

// mockRuleService is a mock implementation of driving.RuleService.
type mockRuleService struct {
	rules    []domain.Rule
	problems []driving.RuleProblem
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
	return m.problems
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.RunRecord
	run  *domain.RunRecord
	err  error
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.RunRecord, error) {
	return m.run, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
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
