package domain

import "errors"

// Domain errors represent run-level failures.
// Unresolved pages are not errors; they are routed to fallback naming.
var (
	// ErrConfiguration indicates the run was refused before the document was opened:
	// blank prefix, empty rule list, unusable source or destination.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidRule indicates a rule could not be built or referenced a
	// capture group that a successful match does not have.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrIO indicates the document engine failed to open, extract or save.
	// Pages written before the failure remain on disk.
	ErrIO = errors.New("i/o error")

	// ErrRunInProgress indicates another run holds the same source document.
	ErrRunInProgress = errors.New("run in progress")

	// ErrFilenameCollision indicates two pages resolved to the same output name
	// under the error collision policy.
	ErrFilenameCollision = errors.New("filename collision")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrHistoryUnavailable indicates run history is disabled or not configured.
	ErrHistoryUnavailable = errors.New("run history unavailable")

	// ErrToolNotFound indicates an external tool required by the document engine
	// is not installed.
	ErrToolNotFound = errors.New("required tool not found")
)
