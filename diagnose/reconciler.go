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


package diagnose

import (
	"log/slog"

	"github.com/poiesic/searchdiag/core"
)

// Reconciler maintains the single best-known answer across strategy results.
//
// It mutates the run-scoped BestAnswer it was given; the owner (the
// orchestrator) must serialize Consider calls. The rule is strict
// improvement: an equal score never displaces the existing best, so the
// first-seen provenance wins ties, and the best score never decreases within
// a run regardless of the order results arrive in.
type Reconciler struct {
	best   *core.BestAnswer
	logger *slog.Logger
}

// NewReconciler creates a reconciler over the given run-scoped state.
func NewReconciler(best *core.BestAnswer) *Reconciler {
	return &Reconciler{
		best:   best,
		logger: slog.Default().With("component", "reconciler"),
	}
}

// Consider feeds one result into the reconciled state. Results without any
// usable score are no-ops. Returns true when the best answer improved.
func (r *Reconciler) Consider(result *core.StrategyResult) bool {
	score, ok := result.CandidateScore()
	if !ok {
		return false
	}
	if r.best.Scored && score <= r.best.Score {
		r.logger.Debug("keeping current best",
			"candidate", score,
			"best", r.best.Score,
			"provenance", r.best.Provenance)
		return false
	}

	provenance := core.Provenance{Strategy: result.Strategy, Index: result.Index}
	sameProvenance := r.best.Provenance == provenance

	r.best.Score = score
	r.best.Scored = true
	if result.SemanticAnswer != nil {
		r.best.SemanticAnswer = result.SemanticAnswer.Text
	} else {
		r.best.SemanticAnswer = ""
	}

	switch {
	case result.EnhancedAnswer != "":
		r.best.EnhancedAnswer = result.EnhancedAnswer
		r.best.EnhancedStale = false
	case r.best.EnhancedAnswer != "" && !sameProvenance:
		// The winner has no generated answer of its own. Keep the previous
		// one but flag that its provenance no longer matches the score's.
		r.best.EnhancedStale = true
	}
	r.best.Provenance = provenance

	r.logger.Debug("best answer improved", "score", score, "provenance", provenance)
	return true
}

// Best returns the current reconciled state.
func (r *Reconciler) Best() core.BestAnswer {
	return *r.best
}
