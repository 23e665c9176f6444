package diagnose

import "github.com/poiesic/searchdiag/core"

// RunMonitor provides hooks to observe a diagnostic run.
// Implement this interface to track progress and intermediate results.
type RunMonitor interface {
	RunStarted(query string, pairs []core.Pair)
	StrategyStarted(pair core.Pair)
	StrategyFinished(result *core.StrategyResult)
	AnomalyDetected(record core.AnomalyRecord)
	BestAnswerImproved(best core.BestAnswer)
	RunFinished(results []*core.StrategyResult)
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) RunStarted(_ string, _ []core.Pair)      {}
func (n *noopMonitor) StrategyStarted(_ core.Pair)             {}
func (n *noopMonitor) StrategyFinished(_ *core.StrategyResult) {}
func (n *noopMonitor) AnomalyDetected(_ core.AnomalyRecord)    {}
func (n *noopMonitor) BestAnswerImproved(_ core.BestAnswer)    {}
func (n *noopMonitor) RunFinished(_ []*core.StrategyResult)    {}
