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
	"sort"
	"strings"

	"github.com/poiesic/searchdiag/core"
)

const defaultTopDocuments = 3

// Generator assembles the final DiagnosticSummary from run state.
// Generate is a pure function of its inputs: the same run state always
// produces an identical summary, whatever order the results arrived in.
type Generator struct {
	topDocuments int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTopDocuments sets how many documents the summary keeps. Values below 1
// keep the default of 3.
func WithTopDocuments(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.topDocuments = n
		}
	}
}

// NewGenerator creates a summary generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{topDocuments: defaultTopDocuments}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the summary for one run. An empty run log yields an empty
// summary with no outcomes and no documents.
func (g *Generator) Generate(query string, runLog []*core.StrategyResult, best core.BestAnswer, anomalies []core.AnomalyRecord, perf core.PerformanceSummary) *core.DiagnosticSummary {
	summary := &core.DiagnosticSummary{
		Query:       query,
		Outcomes:    make(map[string]core.Outcome, len(runLog)),
		Anomalies:   append([]core.AnomalyRecord{}, anomalies...),
		BestAnswer:  best,
		Performance: perf,
	}

	for _, result := range runLog {
		summary.Outcomes[result.Pair().Key()] = result.Outcome
	}
	summary.TopDocuments = topDocuments(runLog, g.topDocuments)
	summary.Diagnosis = diagnose(summary.Outcomes)
	return summary
}

// topDocuments pools every scored document across the run, keeps the highest
// score per document ID, and returns the top n ordered by score descending
// with ID as the tiebreak.
func topDocuments(runLog []*core.StrategyResult, n int) []core.Document {
	byID := make(map[string]core.Document)
	for _, result := range runLog {
		for _, doc := range result.Documents {
			if !doc.Scored {
				continue
			}
			if existing, ok := byID[doc.ID]; !ok || doc.Score > existing.Score {
				byID[doc.ID] = doc
			}
		}
	}
	if len(byID) == 0 {
		return nil
	}

	docs := make([]core.Document, 0, len(byID))
	for _, doc := range byID {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].ID < docs[j].ID
	})
	if len(docs) > n {
		docs = docs[:n]
	}
	return docs
}

// diagnose produces the one-line verdict from the outcome map. The tiers go
// from the most capable strategy downward, so the verdict names the richest
// search feature that still works.
func diagnose(outcomes map[string]core.Outcome) string {
	if len(outcomes) == 0 {
		return ""
	}

	passed := func(strategy core.StrategyID) bool {
		for key, outcome := range outcomes {
			if outcome != core.OutcomePass {
				continue
			}
			if strings.HasPrefix(key, string(strategy)+"/") {
				return true
			}
		}
		return false
	}

	switch {
	case passed(core.StrategyHybridSemantic):
		return "full hybrid semantic search works"
	case passed(core.StrategyHybridBasic):
		return "basic hybrid search works"
	case passed(core.StrategySemanticFiltered):
		return "semantic search with explicit field selection works"
	case passed(core.StrategySemantic):
		return "basic semantic search works, filtered semantic may have issues"
	case passed(core.StrategyBasic):
		return "basic text search works, richer strategies are failing"
	default:
		return "all searches failed, check endpoint and credential configuration"
	}
}
