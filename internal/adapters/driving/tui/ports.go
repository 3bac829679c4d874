// Package tui provides an interactive terminal user interface for pagesplit.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Split runs the batch pipeline.
	Split driving.SplitService

	// Rules supplies the rule list for a run.
	Rules driving.RuleService

	// Settings supplies the default prefix, suffix and rule file. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Split == nil {
		return ErrMissingSplitService
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	return nil
}
