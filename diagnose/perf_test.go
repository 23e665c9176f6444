package diagnose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/searchdiag/core"
)

func timedResult(strategy core.StrategyID, search, embedding, completion time.Duration) *core.StrategyResult {
	return &core.StrategyResult{
		Strategy: strategy,
		Index:    "user",
		Timing: core.Timing{
			Search:     search,
			Embedding:  embedding,
			Completion: completion,
		},
	}
}

func TestPerfAggregatorStats(t *testing.T) {
	agg := NewPerfAggregator()
	agg.Record(timedResult(core.StrategyBasic, 100*time.Millisecond, 0, 0))
	agg.Record(timedResult(core.StrategyBasic, 300*time.Millisecond, 0, 0))
	agg.Record(timedResult(core.StrategyHybridBasic, 200*time.Millisecond, 50*time.Millisecond, 0))

	summary := agg.Summarize()

	basic := summary.PerStrategy[core.StrategyBasic]
	require.Equal(t, 2, basic.Search.Count)
	assert.Equal(t, 100*time.Millisecond, basic.Search.Min)
	assert.Equal(t, 300*time.Millisecond, basic.Search.Max)
	assert.Equal(t, 200*time.Millisecond, basic.Search.Mean)
	assert.Zero(t, basic.Embedding.Count)

	hybrid := summary.PerStrategy[core.StrategyHybridBasic]
	assert.Equal(t, 1, hybrid.Embedding.Count)
	assert.Equal(t, 50*time.Millisecond, hybrid.Embedding.Mean)

	assert.Equal(t, 3, summary.Overall.Count)
	assert.Equal(t, 100*time.Millisecond, summary.Overall.Min)
	assert.Equal(t, 300*time.Millisecond, summary.Overall.Max)
	assert.Equal(t, 200*time.Millisecond, summary.Overall.Mean)
}

func TestPerfAggregatorSkipsZeroDurations(t *testing.T) {
	agg := NewPerfAggregator()
	// A strategy that errored before the search call ran.
	agg.Record(timedResult(core.StrategyBasic, 0, 0, 0))
	agg.Record(timedResult(core.StrategyBasic, 100*time.Millisecond, 0, 0))

	summary := agg.Summarize()
	assert.Equal(t, 1, summary.PerStrategy[core.StrategyBasic].Search.Count)
	assert.Equal(t, 1, summary.Overall.Count)
}

func TestPerfAggregatorEmpty(t *testing.T) {
	agg := NewPerfAggregator()
	summary := agg.Summarize()

	assert.Nil(t, summary.PerStrategy)
	assert.Zero(t, summary.Overall.Count)
}

func TestPerfAggregatorSummarizeIsIdempotent(t *testing.T) {
	agg := NewPerfAggregator()
	agg.Record(timedResult(core.StrategySemantic, 120*time.Millisecond, 0, 30*time.Millisecond))

	first := agg.Summarize()
	second := agg.Summarize()
	assert.Equal(t, first, second)
}
