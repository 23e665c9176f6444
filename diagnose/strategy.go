package diagnose

import (
	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/searchapi"
)

// DefaultBattery returns the fixed, ordered (strategy, index) list for a
// configuration: basic and semantic probes for every index, the filtered
// semantic probe on the last index, and the hybrid probes only when the
// completion backend is configured.
func DefaultBattery(cfg *config.Config) []core.Pair {
	names := cfg.IndexNames()
	if len(names) == 0 {
		return nil
	}

	var pairs []core.Pair
	for _, name := range names {
		pairs = append(pairs, core.Pair{Strategy: core.StrategyBasic, Index: name})
	}
	for _, name := range names {
		pairs = append(pairs, core.Pair{Strategy: core.StrategySemantic, Index: name})
	}
	pairs = append(pairs, core.Pair{Strategy: core.StrategySemanticFiltered, Index: names[len(names)-1]})

	if cfg.HasOpenAI() {
		for _, name := range names {
			pairs = append(pairs, core.Pair{Strategy: core.StrategyHybridBasic, Index: name})
		}
		for _, name := range names {
			pairs = append(pairs, core.Pair{Strategy: core.StrategyHybridSemantic, Index: name})
		}
	}
	return pairs
}

// buildQuery translates one (strategy, index) pair into the wire query the
// search adapter sends.
func buildQuery(strategy core.StrategyID, idx config.IndexConfig, text string, top int, vector []float32) searchapi.Query {
	q := searchapi.Query{
		Text: text,
		Top:  top,
	}

	if strategy.NeedsSemantic() {
		q.Semantic = true
		q.SemanticConfiguration = idx.SemanticConfiguration
	}
	if strategy == core.StrategySemanticFiltered {
		q.SelectFields = idx.SelectFields
		q.SearchMode = "any"
	}
	if strategy.NeedsVector() {
		q.Vector = vector
		q.VectorK = top
		q.VectorField = idx.VectorField
	}
	return q
}
