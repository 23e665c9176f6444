// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/poiesic/searchdiag/core"
)

const answerPreviewLen = 100

// Render writes the human-readable report to w.
func Render(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	fmt.Fprintln(w, styles.Header.Render("DIAGNOSTIC SUMMARY"))
	fmt.Fprintf(w, "%s %q\n\n", styles.Label.Render("Query:"), summary.Query)

	renderOutcomes(w, summary, styles)
	renderAnomalies(w, summary, styles)
	renderBestAnswer(w, summary, styles)
	renderTopDocuments(w, summary, styles)
	renderPerformance(w, summary, styles)

	if summary.Diagnosis != "" {
		fmt.Fprintln(w, styles.Header.Render("DIAGNOSIS"))
		fmt.Fprintf(w, "  %s\n", summary.Diagnosis)
	}
}

func renderOutcomes(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	if len(summary.Outcomes) == 0 {
		fmt.Fprintln(w, styles.Label.Render("No strategies executed."))
		fmt.Fprintln(w)
		return
	}

	keys := make([]string, 0, len(summary.Outcomes))
	width := 0
	for key := range summary.Outcomes {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)

	fmt.Fprintln(w, styles.Header.Render("STRATEGY OUTCOMES"))
	for _, key := range keys {
		outcome := summary.Outcomes[key]
		var label string
		switch outcome {
		case core.OutcomePass:
			label = styles.Pass.Render("PASS")
		case core.OutcomeFail:
			label = styles.Fail.Render("FAIL")
		default:
			label = styles.Error.Render("ERROR")
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, key, label)
	}
	fmt.Fprintln(w)
}

func renderAnomalies(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	if len(summary.Anomalies) == 0 {
		return
	}
	fmt.Fprintln(w, styles.Header.Render("HTTP ANOMALIES"))
	for _, record := range summary.Anomalies {
		pair := core.Pair{Strategy: record.Strategy, Index: record.Index}
		fmt.Fprintf(w, "  %s %s: %s\n",
			styles.Warning.Render(string(record.Kind)),
			pair.Key(),
			record.Detail)
	}
	fmt.Fprintln(w)
}

func renderBestAnswer(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	best := summary.BestAnswer
	if !best.Scored {
		return
	}
	fmt.Fprintln(w, styles.Header.Render("BEST ANSWER"))
	provenance := core.Pair{Strategy: best.Provenance.Strategy, Index: best.Provenance.Index}
	fmt.Fprintf(w, "  %s %.3f (%s)\n", styles.Label.Render("Score:"), best.Score, provenance.Key())
	if best.SemanticAnswer != "" {
		fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Semantic:"), preview(best.SemanticAnswer))
	}
	if best.EnhancedAnswer != "" {
		label := "Enhanced:"
		if best.EnhancedStale {
			label = "Enhanced (from earlier strategy):"
		}
		fmt.Fprintf(w, "  %s %s\n", styles.Label.Render(label), preview(best.EnhancedAnswer))
	}
	fmt.Fprintln(w)
}

func renderTopDocuments(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	if len(summary.TopDocuments) == 0 {
		return
	}
	fmt.Fprintln(w, styles.Header.Render("TOP DOCUMENTS"))
	for i, doc := range summary.TopDocuments {
		name := doc.Name
		if name == "" {
			name = doc.ID
		}
		fmt.Fprintf(w, "  %d. %s (score %.3f)\n", i+1, name, doc.Score)
	}
	fmt.Fprintln(w)
}

func renderPerformance(w io.Writer, summary *core.DiagnosticSummary, styles Styles) {
	perf := summary.Performance
	if perf.Overall.Count == 0 {
		return
	}
	fmt.Fprintln(w, styles.Header.Render("PERFORMANCE"))
	fmt.Fprintf(w, "  %s %d calls, min %s, max %s, mean %s\n",
		styles.Label.Render("Overall:"),
		perf.Overall.Count, perf.Overall.Min, perf.Overall.Max, perf.Overall.Mean)

	strategies := make([]string, 0, len(perf.PerStrategy))
	for strategy := range perf.PerStrategy {
		strategies = append(strategies, string(strategy))
	}
	sort.Strings(strategies)
	for _, strategy := range strategies {
		stats := perf.PerStrategy[core.StrategyID(strategy)]
		if stats.Search.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-18s search mean %s", strategy, stats.Search.Mean)
		if stats.Embedding.Count > 0 {
			fmt.Fprintf(w, ", embedding mean %s", stats.Embedding.Mean)
		}
		if stats.Completion.Count > 0 {
			fmt.Fprintf(w, ", completion mean %s", stats.Completion.Mean)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= answerPreviewLen {
		return s
	}
	return s[:answerPreviewLen] + "..."
}
