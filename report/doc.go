// Package report turns a completed diagnostic run into its terminal
// artifacts: the DiagnosticSummary value, a deterministic JSON encoding for
// CI consumption, and a human-readable console rendering.
package report
