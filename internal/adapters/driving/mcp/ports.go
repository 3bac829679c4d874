package mcp

import (
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Split runs, plans and inspects documents.
	Split driving.SplitService

	// Rules supplies the rule list for each call.
	Rules driving.RuleService

	// History exposes past runs. Optional.
	History driving.HistoryService

	// Settings supplies default prefix, suffix and rule file. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Split == nil {
		return ErrMissingSplitService
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	return nil
}
