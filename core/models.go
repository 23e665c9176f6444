package core

import (
	"net/http"
	"time"
)

// StrategyID names one search technique in the diagnostic battery.
type StrategyID string

const (
	// StrategyBasic is a plain text search with no ranking extras.
	StrategyBasic StrategyID = "basic"
	// StrategySemantic enables semantic ranking with extractive captions and answers.
	StrategySemantic StrategyID = "semantic"
	// StrategyHybridBasic combines text search with a vectorized query.
	StrategyHybridBasic StrategyID = "hybrid_basic"
	// StrategyHybridSemantic combines text, vector, and semantic features.
	StrategyHybridSemantic StrategyID = "hybrid_semantic"
	// StrategySemanticFiltered is semantic search with explicit field selection
	// and searchMode=any.
	StrategySemanticFiltered StrategyID = "semantic_filtered"
)

// Strategies lists every known strategy in canonical order.
var Strategies = []StrategyID{
	StrategyBasic,
	StrategySemantic,
	StrategyHybridBasic,
	StrategyHybridSemantic,
	StrategySemanticFiltered,
}

// NeedsVector reports whether the strategy requires an embedding of the query.
func (s StrategyID) NeedsVector() bool {
	return s == StrategyHybridBasic || s == StrategyHybridSemantic
}

// NeedsSemantic reports whether the strategy requests semantic ranking features.
func (s StrategyID) NeedsSemantic() bool {
	return s == StrategySemantic || s == StrategyHybridSemantic || s == StrategySemanticFiltered
}

// Outcome classifies one strategy execution.
type Outcome string

const (
	// OutcomePass means the HTTP call succeeded and the payload parsed,
	// regardless of how many documents came back.
	OutcomePass Outcome = "pass"
	// OutcomeFail means the HTTP call succeeded but the payload was unusable.
	OutcomeFail Outcome = "fail"
	// OutcomeError means the call failed at the transport or protocol level.
	OutcomeError Outcome = "error"
)

// Pair is one (strategy, index) entry in the battery.
type Pair struct {
	Strategy StrategyID `json:"strategy"`
	Index    string     `json:"index"`
}

// Key returns the canonical "strategy/index" form used in reports.
func (p Pair) Key() string {
	return string(p.Strategy) + "/" + p.Index
}

// Document is one search hit as returned by the backend.
//
// Scores arrive loosely typed on the wire; the adapter validates them and
// leaves Scored false when a document carries no usable score.
type Document struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Score   float64 `json:"score"`
	Scored  bool    `json:"scored"`
	Caption string  `json:"caption,omitempty"`
	Content string  `json:"-"` // chunk text, kept only as completion context
}

// SemanticAnswer is an extractive answer produced by the search backend.
type SemanticAnswer struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Timing records stage durations for one strategy execution.
// Embedding and Completion are zero when the stage did not run.
type Timing struct {
	Search     time.Duration `json:"search"`
	Embedding  time.Duration `json:"embedding,omitempty"`
	Completion time.Duration `json:"completion,omitempty"`
}

// StrategyResult is one execution of one strategy against one index.
// It is immutable once created by the runner.
type StrategyResult struct {
	Strategy       StrategyID      `json:"strategy"`
	Index          string          `json:"index"`
	Outcome        Outcome         `json:"outcome"`
	HTTPStatus     int             `json:"http_status,omitempty"` // 0 when the call never returned
	Documents      []Document      `json:"documents,omitempty"`   // backend order, not re-sorted
	SemanticAnswer *SemanticAnswer `json:"semantic_answer,omitempty"`
	EnhancedAnswer string          `json:"enhanced_answer,omitempty"`
	Err            string          `json:"error,omitempty"`
	Timing         Timing          `json:"timing"`
}

// Pair returns the (strategy, index) provenance of the result.
func (r *StrategyResult) Pair() Pair {
	return Pair{Strategy: r.Strategy, Index: r.Index}
}

// CandidateScore returns the best score this result can offer: the maximum of
// the semantic answer score and any scored document. The second return is
// false when the result carries no usable score at all.
func (r *StrategyResult) CandidateScore() (float64, bool) {
	best, found := 0.0, false
	if r.SemanticAnswer != nil {
		best, found = r.SemanticAnswer.Score, true
	}
	for _, d := range r.Documents {
		if d.Scored && (!found || d.Score > best) {
			best, found = d.Score, true
		}
	}
	return best, found
}

// AnomalyKind identifies one class of HTTP irregularity.
type AnomalyKind string

const (
	// AnomalyPartialContent marks a 206 response.
	AnomalyPartialContent AnomalyKind = "partial_content"
	// AnomalyContentLengthMismatch marks a Content-Length header inconsistent
	// with the bytes actually received.
	AnomalyContentLengthMismatch AnomalyKind = "content_length_mismatch"
	// AnomalyUnexpectedRangeHeader marks Range/Content-Range headers on a
	// response when no range was requested.
	AnomalyUnexpectedRangeHeader AnomalyKind = "unexpected_range_header"
	// AnomalyOtherNon200 marks any other non-success status.
	AnomalyOtherNon200 AnomalyKind = "other_non_200"
)

// AnomalyRecord is one detected HTTP irregularity with its provenance.
type AnomalyRecord struct {
	Strategy StrategyID  `json:"strategy"`
	Index    string      `json:"index"`
	Kind     AnomalyKind `json:"kind"`
	Detail   string      `json:"detail"`
}

// RawExchange is the raw HTTP metadata of one search call, captured by the
// adapter for anomaly classification.
type RawExchange struct {
	StatusCode     int
	Status         string
	Header         http.Header
	BodyBytes      int  // bytes actually read from the response body
	RangeRequested bool // whether the request carried a Range header
	Elapsed        time.Duration
}

// Provenance identifies which (strategy, index) produced the current best answer.
type Provenance struct {
	Strategy StrategyID `json:"strategy"`
	Index    string     `json:"index"`
}

// BestAnswer is the single reconciled best-known answer for a run.
// Scored is false until any result produces a usable score.
type BestAnswer struct {
	Scored         bool    `json:"scored"`
	Score          float64 `json:"score"`
	SemanticAnswer string  `json:"semantic_answer,omitempty"`
	EnhancedAnswer string  `json:"enhanced_answer,omitempty"`
	// EnhancedStale is true when the enhanced answer was carried over from an
	// earlier provenance because the winning result had none of its own.
	EnhancedStale bool       `json:"enhanced_stale,omitempty"`
	Provenance    Provenance `json:"provenance"`
}

// DurationStats summarizes one set of stage durations.
type DurationStats struct {
	Count int           `json:"count"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Mean  time.Duration `json:"mean"`
}

// StrategyStats holds per-strategy timing summaries. Embedding and Completion
// have Count zero when the stage never ran for that strategy.
type StrategyStats struct {
	Search     DurationStats `json:"search"`
	Embedding  DurationStats `json:"embedding,omitzero"`
	Completion DurationStats `json:"completion,omitzero"`
}

// PerformanceSummary aggregates timing across the whole run.
type PerformanceSummary struct {
	PerStrategy map[StrategyID]StrategyStats `json:"per_strategy,omitempty"`
	Overall     DurationStats                `json:"overall"`
}

// DiagnosticSummary is the terminal artifact of a run.
type DiagnosticSummary struct {
	Query        string             `json:"query"`
	Outcomes     map[string]Outcome `json:"per_strategy_outcomes"`
	Anomalies    []AnomalyRecord    `json:"anomalies"`
	BestAnswer   BestAnswer         `json:"best_answer"`
	TopDocuments []Document         `json:"top_documents"`
	Performance  PerformanceSummary `json:"performance"`
	Diagnosis    string             `json:"diagnosis,omitempty"`
}

// HasPass reports whether at least one strategy passed. The process exit
// status is derived from this.
func (s *DiagnosticSummary) HasPass() bool {
	for _, o := range s.Outcomes {
		if o == OutcomePass {
			return true
		}
	}
	return false
}
