// Package mcp provides an MCP (Model Context Protocol) server adapter for pagesplit.
// It lets AI assistants plan, run and diagnose page splits on local documents.
package mcp

import "errors"

// ErrMissingSplitService is returned when the split service is not provided.
var ErrMissingSplitService = errors.New("mcp: split service is required")

// ErrMissingRuleService is returned when the rule service is not provided.
var ErrMissingRuleService = errors.New("mcp: rule service is required")
