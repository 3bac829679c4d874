// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewForm collects the source, destination and prefix.
	ViewForm ViewType = iota
	// ViewRunning is shown while a split is in progress.
	ViewRunning
	// ViewResult lists the pages of a finished run.
	ViewResult
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewRunning:
		return "running"
	case ViewResult:
		return "result"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FormSubmitted carries the values entered in the form.
type FormSubmitted struct {
	Source      string
	Destination string
	Prefix      string
}

// SplitCompleted carries the outcome of a run back to the model.
// Result may be set alongside Err when the run stopped part way.
type SplitCompleted struct {
	Request domain.SplitRequest
	Result  *domain.BatchResult
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
