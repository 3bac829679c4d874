// Package domain defines the core business entities for pagesplit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Rule: A labelled pattern whose capture group yields a page identifier
//   - Page: One page of the source document and its resolved identifiers
//   - BatchResult: The aggregate outcome of one split run
//   - RunRecord: A persisted summary of a past run
//   - Settings: User defaults for prefix, suffix, separator and policies
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
