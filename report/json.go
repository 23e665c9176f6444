package report

import (
	"encoding/json"

	"github.com/poiesic/searchdiag/core"
)

// MarshalSummary encodes the summary as indented JSON. Map keys are sorted
// by the encoder, so two identical summaries produce identical bytes.
func MarshalSummary(summary *core.DiagnosticSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
