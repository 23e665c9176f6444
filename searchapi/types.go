package searchapi

import (
	"encoding/json"

	"github.com/poiesic/searchdiag/core"
)

// Query describes one search call. The zero value is a plain text search.
type Query struct {
	// Text is the search text.
	Text string

	// Top is the number of documents requested.
	Top int

	// Semantic enables semantic ranking with extractive captions and answers.
	Semantic bool

	// SemanticConfiguration names the semantic configuration to use.
	SemanticConfiguration string

	// SelectFields, when set, restricts the returned fields.
	SelectFields []string

	// SearchMode is "any" or "all"; empty uses the service default.
	SearchMode string

	// Vector, when set, adds a vectorized query alongside the text.
	Vector []float32

	// VectorK is the nearest-neighbor count for the vectorized query.
	VectorK int

	// VectorField is the embedding field the vectorized query targets.
	VectorField string
}

// Result holds the parsed payload of one successful search call.
type Result struct {
	// Documents are the hits in backend order, not re-sorted.
	Documents []core.Document

	// Answers are extractive semantic answers, when requested and present.
	Answers []core.SemanticAnswer
}

// searchRequest is the REST wire format of a search call.
type searchRequest struct {
	Search                string        `json:"search"`
	Top                   int           `json:"top,omitempty"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	Captions              string        `json:"captions,omitempty"`
	Answers               string        `json:"answers,omitempty"`
	Select                string        `json:"select,omitempty"`
	SearchMode            string        `json:"searchMode,omitempty"`
	VectorQueries         []vectorQuery `json:"vectorQueries,omitempty"`
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	K      int       `json:"k"`
	Fields string    `json:"fields"`
}

// searchResponse is the wire shape of a search reply. Documents are decoded
// as loose maps because field sets vary per index; extraction and score
// validation happen in parseDocument.
type searchResponse struct {
	Answers []rawAnswer      `json:"@search.answers"`
	Value   []map[string]any `json:"value"`
}

type rawAnswer struct {
	Text  string `json:"text"`
	Score any    `json:"score"`
}

// parseDocument extracts a typed document from one loose wire document.
func parseDocument(raw map[string]any) core.Document {
	doc := core.Document{
		ID:      asString(raw["id"]),
		Name:    asString(raw["file_name"]),
		Content: asString(raw["chunk_text"]),
	}
	if doc.ID == "" {
		// Some indexes key documents by file name only.
		doc.ID = doc.Name
	}
	doc.Score, doc.Scored = asFloat(raw["@search.score"])

	if captions, ok := raw["@search.captions"].([]any); ok && len(captions) > 0 {
		if caption, ok := captions[0].(map[string]any); ok {
			doc.Caption = asString(caption["text"])
		}
	}
	return doc
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat coerces a loosely typed wire score. Strings like "N/A", nulls, and
// other junk all collapse to the unscored variant.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
