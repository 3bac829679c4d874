package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingSplitService,
		ErrMissingRuleService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingSplitService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSplitService.Error(), "split service")
}

func TestErrMissingRuleService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingRuleService.Error(), "rule service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
