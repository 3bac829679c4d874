// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The split pipeline lives here: IdentifierResolver, FilenameAssigner
// and SplitService. Services are pure Go with no CGO.
package services
