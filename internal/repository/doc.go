// Package repository defines the interface for run-history persistence.
//
// The engine itself is stateless between runs; the repository records what
// happened (run summaries, per-invocation outcomes, rollback faults) for
// reporting and selective re-running. The sqlite subpackage provides the
// storage implementation.
package repository
