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
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/searchdiag/ai"
	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/searchapi"
)

// SearchClient is the adapter surface the runner drives. *searchapi.Client
// implements it; tests substitute stubs.
type SearchClient interface {
	Search(ctx context.Context, index string, q searchapi.Query) (*searchapi.Result, *core.RawExchange, error)
}

// Runner executes one strategy against one index, producing exactly one
// StrategyResult per call. Adapter failures are absorbed into the result;
// a single strategy can never abort the run.
type Runner struct {
	client    SearchClient
	cfg       *config.Config
	embedder  ai.Embedder        // nil without a completion backend
	generator ai.AnswerGenerator // nil without a completion backend
	timeout   time.Duration
	logger    *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger. Default is slog.Default().
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner. The provider may be nil, in which case vector
// strategies report an error outcome and no enhanced answers are generated.
func NewRunner(client SearchClient, cfg *config.Config, provider ai.Provider, opts ...RunnerOption) (*Runner, error) {
	if client == nil {
		return nil, ErrSearchClientRequired
	}
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	r := &Runner{
		client:  client,
		cfg:     cfg,
		timeout: cfg.CallTimeout,
		logger:  slog.Default().With("component", "runner"),
	}
	if provider != nil {
		r.embedder = provider.Embedder()
		r.generator = provider.Generator()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the pair and returns the result along with any anomalies
// classified from the raw exchange. It never returns an error: transport
// failures, timeouts, and bad payloads all become outcomes.
func (r *Runner) Run(ctx context.Context, pair core.Pair) (*core.StrategyResult, []core.AnomalyRecord) {
	result := &core.StrategyResult{
		Strategy: pair.Strategy,
		Index:    pair.Index,
	}

	idx, ok := r.cfg.Index(pair.Index)
	if !ok {
		// Pairs are validated before the run starts; reaching this means the
		// orchestrator was bypassed.
		result.Outcome = core.OutcomeError
		result.Err = core.ErrUnknownIndex.Error()
		return result, nil
	}

	var vector []float32
	if pair.Strategy.NeedsVector() {
		if r.embedder == nil {
			result.Outcome = core.OutcomeError
			result.Err = ErrEmbedderNotConfigured.Error()
			return result, nil
		}
		embedded, elapsed, err := r.embed(ctx)
		result.Timing.Embedding = elapsed
		if err != nil {
			r.logger.Error("embedding failed", "pair", pair.Key(), "err", err)
			result.Outcome = core.OutcomeError
			result.Err = err.Error()
			return result, nil
		}
		vector = embedded
	}

	query := buildQuery(pair.Strategy, idx, r.cfg.Query, r.cfg.Top, vector)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	start := time.Now()
	searched, exchange, err := r.client.Search(callCtx, idx.IndexName, query)
	cancel()

	var anomalies []core.AnomalyRecord
	if exchange != nil {
		result.Timing.Search = exchange.Elapsed
		result.HTTPStatus = exchange.StatusCode
		anomalies = Classify(pair, exchange)
	} else {
		result.Timing.Search = time.Since(start)
	}

	if err != nil {
		if errors.Is(err, searchapi.ErrMalformedPayload) {
			// The call itself succeeded; the payload is unusable.
			result.Outcome = core.OutcomeFail
		} else {
			result.Outcome = core.OutcomeError
			if result.HTTPStatus == 0 {
				result.HTTPStatus = searchapi.StatusOf(err)
			}
		}
		result.Err = err.Error()
		r.logger.Warn("strategy failed",
			"pair", pair.Key(),
			"outcome", result.Outcome,
			"status", result.HTTPStatus,
			"err", err)
		return result, anomalies
	}

	result.Outcome = core.OutcomePass
	result.Documents = searched.Documents
	if len(searched.Answers) > 0 {
		answer := searched.Answers[0]
		result.SemanticAnswer = &answer
	}

	if pair.Strategy.NeedsSemantic() {
		r.enhance(ctx, result, searched)
	}

	r.logger.Info("strategy completed",
		"pair", pair.Key(),
		"documents", len(result.Documents),
		"answers", len(searched.Answers),
		"elapsed", result.Timing.Search)

	return result, anomalies
}

func (r *Runner) embed(ctx context.Context) ([]float32, time.Duration, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	vector, err := r.embedder.EmbedText(callCtx, r.cfg.Query)
	return vector, time.Since(start), err
}

// enhance asks the completion backend for a generated answer grounded in the
// strategy's results. Failures are logged and leave the result untouched;
// a missing enhanced answer never fails a strategy.
func (r *Runner) enhance(ctx context.Context, result *core.StrategyResult, searched *searchapi.Result) {
	if r.generator == nil {
		return
	}
	if len(searched.Documents) == 0 && len(searched.Answers) == 0 {
		return
	}

	req := ai.AnswerRequest{Query: r.cfg.Query}
	for _, answer := range searched.Answers {
		req.SemanticAnswers = append(req.SemanticAnswers, answer.Text)
	}
	for _, doc := range searched.Documents {
		req.Documents = append(req.Documents, ai.ContextDocument{
			Name: doc.Name,
			Text: doc.Content,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	answer, err := r.generator.GenerateAnswer(callCtx, req)
	result.Timing.Completion = time.Since(start)
	if err != nil {
		r.logger.Warn("enhanced answer generation failed",
			"pair", result.Pair().Key(),
			"err", err)
		return
	}
	result.EnhancedAnswer = answer
}
