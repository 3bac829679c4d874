package domain

import "time"

// FailedNamePrefix starts the fallback name of an unresolved page.
// The AAA_ prefix sorts failed pages first in a directory listing.
const FailedNamePrefix = "AAA_FAILED_TO_READ_"

// DefaultSuffix is the output file extension when none is configured.
const DefaultSuffix = "pdf"

// CollisionPolicy decides what happens when two pages in one run
// resolve to the same output name.
type CollisionPolicy string

// Available collision policies.
const (
	// CollisionOverwrite lets the later page replace the earlier file.
	CollisionOverwrite CollisionPolicy = "overwrite"

	// CollisionError aborts the run with ErrFilenameCollision.
	CollisionError CollisionPolicy = "error"

	// CollisionIncrement appends a counter to the later name.
	CollisionIncrement CollisionPolicy = "increment"
)

// IsValid returns true if the policy is recognised.
func (p CollisionPolicy) IsValid() bool {
	switch p {
	case CollisionOverwrite, CollisionError, CollisionIncrement:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p CollisionPolicy) String() string {
	return string(p)
}

// SplitRequest carries everything one run needs.
type SplitRequest struct {
	// Source is the path of the multi-page document.
	Source string

	// Destination is the directory receiving one file per page.
	Destination string

	// Prefix starts every resolved output name. Must not be blank.
	Prefix string

	// Suffix is the output extension without the dot. Empty means DefaultSuffix.
	Suffix string

	// Rules is the ordered rule list.
	Rules []Rule
}

// PageOutcome records how one page was named.
type PageOutcome struct {
	Index      int    `json:"index"`
	Filename   string `json:"filename"`
	Resolved   bool   `json:"resolved"`
	Identifier string `json:"identifier,omitempty"`
}

// BatchResult is the aggregate outcome of one run.
type BatchResult struct {
	// RunID identifies the run in logs and history.
	RunID string

	// WrittenCount is the number of pages saved without error.
	WrittenCount int

	// FailedCount is the number of unresolved pages, not write failures.
	FailedCount int

	// Outputs lists each processed page in index order.
	Outputs []PageOutcome

	StartedAt  time.Time
	FinishedAt time.Time
}

// RunRecord is the persisted summary of a run.
type RunRecord struct {
	ID           string
	Source       string
	Destination  string
	Prefix       string
	Suffix       string
	WrittenCount int
	FailedCount  int
	Outputs      []PageOutcome
	// Error is empty for runs that completed.
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the run completed without a fatal error.
func (r RunRecord) Succeeded() bool {
	return r.Error == ""
}

// Duration returns the wall time of the run.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
