// Package memory provides in-memory implementations of the run history
// and configuration ports. Nothing is persisted across processes.
package memory
