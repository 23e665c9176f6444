package history

import (
	"encoding/json"
	"time"

	"github.com/poiesic/searchdiag/core"
)

// Record is one archived diagnostic run.
type Record struct {
	ID          string                  `json:"id"`
	Query       string                  `json:"query"`
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt time.Time               `json:"completed_at"`
	Summary     *core.DiagnosticSummary `json:"summary"`
}

func marshalRecord(record *Record) ([]byte, error) {
	return json.Marshal(record)
}

func unmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
