package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// SplitInput is the input schema for the split_document and plan_document tools.
type SplitInput struct {
	Source      string `json:"source" jsonschema:"path of the multi-page PDF"`
	Destination string `json:"destination,omitempty" jsonschema:"directory receiving one file per page (required for split_document)"`
	Prefix      string `json:"prefix,omitempty" jsonschema:"output name prefix (default from settings)"`
	Suffix      string `json:"suffix,omitempty" jsonschema:"output file extension (default from settings)"`
	RulesFile   string `json:"rules_file,omitempty" jsonschema:"TOML rule file (default from settings or built-in rules)"`
}

// SplitOutput is the output schema for the split_document and plan_document tools.
// Error is set when the run stopped early; Pages then lists what was done.
type SplitOutput struct {
	RunID        string               `json:"run_id"`
	WrittenCount int                  `json:"written_count"`
	FailedCount  int                  `json:"failed_count"`
	Pages        []domain.PageOutcome `json:"pages"`
	Error        string               `json:"error,omitempty"`
}

// InspectInput is the input schema for the inspect_page tool.
type InspectInput struct {
	Source    string `json:"source" jsonschema:"path of the multi-page PDF"`
	Page      int    `json:"page,omitempty" jsonschema:"page number starting at 1 (0 picks a random page)"`
	RulesFile string `json:"rules_file,omitempty" jsonschema:"TOML rule file (default from settings or built-in rules)"`
}

// InspectOutput is the output schema for the inspect_page tool.
type InspectOutput struct {
	Page       int                 `json:"page"`
	PageCount  int                 `json:"page_count"`
	Text       string              `json:"text"`
	Rules      []RuleOutcomeOutput `json:"rules"`
	Resolved   bool                `json:"resolved"`
	Identifier string              `json:"identifier,omitempty"`

	// ResolveError is set when the rules cannot be applied to this page.
	ResolveError string `json:"resolve_error,omitempty"`
}

// RuleOutcomeOutput is one rule's result on an inspected page.
type RuleOutcomeOutput struct {
	Label   string `json:"label"`
	Matched bool   `json:"matched"`
	Value   string `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListRulesInput is the input schema for the list_rules tool.
type ListRulesInput struct {
	RulesFile string `json:"rules_file,omitempty" jsonschema:"TOML rule file (default from settings or built-in rules)"`
}

// ListRulesOutput is the output schema for the list_rules tool.
type ListRulesOutput struct {
	Rules    []RuleOutput    `json:"rules"`
	Problems []ProblemOutput `json:"problems,omitempty"`
}

// RuleOutput describes one rule in resolution order.
type RuleOutput struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
	Group   int    `json:"group"`
	Kind    string `json:"kind,omitempty"`
}

// ProblemOutput describes a rule that cannot work.
type ProblemOutput struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Reason   string `json:"reason"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "split_document",
		Description: "Split a multi-page PDF into single-page files named from identifiers in each page",
	}, s.handleSplit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_document",
		Description: "Show the file name every page would get, without writing anything",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "inspect_page",
		Description: "Extract one page and report what each identifier rule captures from it",
	}, s.handleInspect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_rules",
		Description: "List the identifier rules in resolution order and flag unusable ones",
	}, s.handleListRules)
}

// handleSplit handles the split_document tool invocation.
func (s *Server) handleSplit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SplitInput,
) (*mcp.CallToolResult, SplitOutput, error) {
	req, err := s.request(input)
	if err != nil {
		return nil, SplitOutput{}, err
	}

	result, err := s.ports.Split.Split(ctx, req)
	return batchOutput(result, err)
}

// handlePlan handles the plan_document tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SplitInput,
) (*mcp.CallToolResult, SplitOutput, error) {
	req, err := s.request(input)
	if err != nil {
		return nil, SplitOutput{}, err
	}

	result, err := s.ports.Split.Plan(ctx, req)
	return batchOutput(result, err)
}

// batchOutput reports a partial result as data rather than a tool failure.
func batchOutput(result *domain.BatchResult, err error) (*mcp.CallToolResult, SplitOutput, error) {
	if result == nil {
		return nil, SplitOutput{}, err
	}

	output := SplitOutput{
		RunID:        result.RunID,
		WrittenCount: result.WrittenCount,
		FailedCount:  result.FailedCount,
		Pages:        result.Outputs,
	}
	if output.Pages == nil {
		output.Pages = []domain.PageOutcome{}
	}
	if err != nil {
		output.Error = err.Error()
	}
	return nil, output, nil
}

// handleInspect handles the inspect_page tool invocation.
func (s *Server) handleInspect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InspectInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	if input.Page < 0 {
		return nil, InspectOutput{}, fmt.Errorf("%w: page must be positive", domain.ErrConfiguration)
	}

	rules, err := s.rules(input.RulesFile)
	if err != nil {
		return nil, InspectOutput{}, err
	}

	in, err := s.ports.Split.Inspect(ctx, input.Source, input.Page-1, rules)
	if err != nil {
		return nil, InspectOutput{}, err
	}

	output := InspectOutput{
		Page:         in.Index + 1,
		PageCount:    in.PageCount,
		Text:         in.Text,
		Rules:        make([]RuleOutcomeOutput, len(in.Rules)),
		Resolved:     in.Page.Resolved,
		ResolveError: in.ResolveErr,
	}
	for i, r := range in.Rules {
		output.Rules[i] = RuleOutcomeOutput{Label: r.Label, Matched: r.Matched, Value: r.Value, Error: r.Err}
	}
	if in.Page.Resolved {
		output.Identifier = in.Page.Composite(domain.DefaultSeparator)
	}
	return nil, output, nil
}

// handleListRules handles the list_rules tool invocation.
func (s *Server) handleListRules(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListRulesInput,
) (*mcp.CallToolResult, ListRulesOutput, error) {
	rules, err := s.rules(input.RulesFile)
	if err != nil {
		return nil, ListRulesOutput{}, err
	}

	output := ListRulesOutput{Rules: ruleOutputs(rules)}
	for _, p := range s.ports.Rules.Validate(rules) {
		output.Problems = append(output.Problems, ProblemOutput{
			Position: p.Position,
			Label:    p.Label,
			Reason:   p.Reason,
		})
	}
	return nil, output, nil
}

func ruleOutputs(rules []domain.Rule) []RuleOutput {
	out := make([]RuleOutput, len(rules))
	for i, r := range rules {
		out[i] = RuleOutput{Label: r.Label, Pattern: r.Pattern, Group: r.Group, Kind: string(r.Kind)}
	}
	return out
}

// settings returns stored settings, or defaults without a settings port.
func (s *Server) settings() (*domain.Settings, error) {
	if s.ports.Settings == nil {
		d := domain.DefaultSettings()
		return &d, nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return settings, nil
}

func (s *Server) rules(path string) ([]domain.Rule, error) {
	if path == "" {
		settings, err := s.settings()
		if err != nil {
			return nil, err
		}
		path = settings.RulesFile
	}
	return s.ports.Rules.Load(path)
}

func (s *Server) request(input SplitInput) (domain.SplitRequest, error) {
	settings, err := s.settings()
	if err != nil {
		return domain.SplitRequest{}, err
	}

	req := domain.SplitRequest{
		Source:      input.Source,
		Destination: input.Destination,
		Prefix:      input.Prefix,
		Suffix:      input.Suffix,
	}
	if req.Prefix == "" {
		req.Prefix = settings.Prefix
	}
	if req.Suffix == "" {
		req.Suffix = settings.Suffix
	}

	rulesFile := input.RulesFile
	if rulesFile == "" {
		rulesFile = settings.RulesFile
	}
	req.Rules, err = s.ports.Rules.Load(rulesFile)
	if err != nil {
		return domain.SplitRequest{}, err
	}
	return req, nil
}
