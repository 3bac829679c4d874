package tui

import "errors"

// ErrMissingSplitService is returned when the split service is not provided.
var ErrMissingSplitService = errors.New("tui: split service is required")

// ErrMissingRuleService is returned when the rule service is not provided.
var ErrMissingRuleService = errors.New("tui: rule service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
