// Package orchestrator wires ingestion, broadcasting, block construction,
// assignment, and emission into a single Run call — the batch job's main
// line, with no long-running state once Run returns.
package orchestrator
