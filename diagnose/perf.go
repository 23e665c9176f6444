package diagnose

import (
	"time"

	"github.com/poiesic/searchdiag/core"
)

// PerfAggregator accumulates per-strategy timing into summary statistics.
// It has no side effects beyond its internal buckets, and Summarize can be
// called any number of times with the same result.
type PerfAggregator struct {
	buckets map[core.StrategyID][]core.Timing
}

// NewPerfAggregator creates an empty aggregator.
func NewPerfAggregator() *PerfAggregator {
	return &PerfAggregator{
		buckets: make(map[core.StrategyID][]core.Timing),
	}
}

// Record appends the result's timing to its strategy bucket.
func (p *PerfAggregator) Record(result *core.StrategyResult) {
	p.buckets[result.Strategy] = append(p.buckets[result.Strategy], result.Timing)
}

// Summarize computes min/max/mean per strategy bucket, plus a global summary
// across all buckets. Stages that never ran carry a zero Count.
func (p *PerfAggregator) Summarize() core.PerformanceSummary {
	summary := core.PerformanceSummary{}
	if len(p.buckets) > 0 {
		summary.PerStrategy = make(map[core.StrategyID]core.StrategyStats, len(p.buckets))
	}

	var allSearches []time.Duration
	for strategy, timings := range p.buckets {
		var searches, embeddings, completions []time.Duration
		for _, t := range timings {
			if t.Search > 0 {
				searches = append(searches, t.Search)
			}
			if t.Embedding > 0 {
				embeddings = append(embeddings, t.Embedding)
			}
			if t.Completion > 0 {
				completions = append(completions, t.Completion)
			}
		}
		summary.PerStrategy[strategy] = core.StrategyStats{
			Search:     computeStats(searches),
			Embedding:  computeStats(embeddings),
			Completion: computeStats(completions),
		}
		allSearches = append(allSearches, searches...)
	}

	summary.Overall = computeStats(allSearches)
	return summary
}

func computeStats(durations []time.Duration) core.DurationStats {
	if len(durations) == 0 {
		return core.DurationStats{}
	}
	stats := core.DurationStats{
		Count: len(durations),
		Min:   durations[0],
		Max:   durations[0],
	}
	var total time.Duration
	for _, d := range durations {
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
		total += d
	}
	stats.Mean = total / time.Duration(len(durations))
	return stats
}
