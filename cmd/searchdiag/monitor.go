package main

import (
	"fmt"
	"io"

	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/diagnose"
	"github.com/poiesic/searchdiag/report"
)

// consoleMonitor prints run progress to the terminal as strategies execute.
type consoleMonitor struct {
	out    io.Writer
	styles report.Styles
}

var _ diagnose.RunMonitor = (*consoleMonitor)(nil)

func (m *consoleMonitor) RunStarted(query string, pairs []core.Pair) {
	fmt.Fprintf(m.out, "%s %q (%d strategies)\n",
		m.styles.Header.Render("Diagnosing"), query, len(pairs))
}

func (m *consoleMonitor) StrategyStarted(pair core.Pair) {
	fmt.Fprintf(m.out, "  %s %s\n", m.styles.Label.Render("running"), pair.Key())
}

func (m *consoleMonitor) StrategyFinished(result *core.StrategyResult) {
	switch result.Outcome {
	case core.OutcomePass:
		fmt.Fprintf(m.out, "  %s %s (%d documents, %s)\n",
			m.styles.Pass.Render("pass"), result.Pair().Key(),
			len(result.Documents), result.Timing.Search)
	case core.OutcomeFail:
		fmt.Fprintf(m.out, "  %s %s: %s\n",
			m.styles.Fail.Render("fail"), result.Pair().Key(), result.Err)
	default:
		fmt.Fprintf(m.out, "  %s %s: %s\n",
			m.styles.Error.Render("error"), result.Pair().Key(), result.Err)
	}
}

func (m *consoleMonitor) AnomalyDetected(record core.AnomalyRecord) {
	pair := core.Pair{Strategy: record.Strategy, Index: record.Index}
	fmt.Fprintf(m.out, "  %s %s on %s: %s\n",
		m.styles.Warning.Render("anomaly"), record.Kind, pair.Key(), record.Detail)
}

func (m *consoleMonitor) BestAnswerImproved(best core.BestAnswer) {
	pair := core.Pair{Strategy: best.Provenance.Strategy, Index: best.Provenance.Index}
	fmt.Fprintf(m.out, "  %s %.3f from %s\n",
		m.styles.Label.Render("new best score"), best.Score, pair.Key())
}

func (m *consoleMonitor) RunFinished(results []*core.StrategyResult) {
	fmt.Fprintf(m.out, "%s %d strategies executed\n\n",
		m.styles.Header.Render("Done:"), len(results))
}
