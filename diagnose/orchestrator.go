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
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/report"
)

// State tracks the lifecycle of an orchestrated run.
type State int32

const (
	// StateNotStarted means Run has not been called yet.
	StateNotStarted State = iota
	// StateRunning means the battery is executing.
	StateRunning
	// StateCompleted means the run finished and the summary was produced.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Orchestrator drives one diagnostic run: it executes the battery, feeds the
// reconciler and the aggregator, and produces the final summary. There is no
// failed state; individual strategy errors are data, and a run that starts
// always completes with a summary.
//
// An Orchestrator is single-use. Create a new one for each run.
type Orchestrator struct {
	runner  *Runner
	cfg     *config.Config
	monitor RunMonitor
	workers int
	state   atomic.Int32
	logger  *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithMonitor installs run progress hooks. Default is a no-op monitor.
func WithMonitor(monitor RunMonitor) OrchestratorOption {
	return func(o *Orchestrator) {
		if monitor != nil {
			o.monitor = monitor
		}
	}
}

// WithWorkers sets the number of concurrent strategy executions. Values
// below 2 keep the default sequential mode.
func WithWorkers(workers int) OrchestratorOption {
	return func(o *Orchestrator) {
		if workers > 1 {
			o.workers = workers
		}
	}
}

// NewOrchestrator creates an orchestrator in the NotStarted state.
func NewOrchestrator(runner *Runner, cfg *config.Config, opts ...OrchestratorOption) (*Orchestrator, error) {
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	o := &Orchestrator{
		runner:  runner,
		cfg:     cfg,
		monitor: &noopMonitor{},
		workers: 1,
		logger:  slog.Default().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

type unit struct {
	result    *core.StrategyResult
	anomalies []core.AnomalyRecord
}

// Run executes the full battery and returns the diagnostic summary.
// Cancellation stops dispatching further strategies but still produces a
// summary from whatever completed. A second call returns ErrRunAlreadyStarted.
func (o *Orchestrator) Run(ctx context.Context) (*core.DiagnosticSummary, error) {
	if !o.state.CompareAndSwap(int32(StateNotStarted), int32(StateRunning)) {
		return nil, ErrRunAlreadyStarted
	}
	defer o.state.Store(int32(StateCompleted))

	pairs := DefaultBattery(o.cfg)
	indexes := o.cfg.IndexNames()
	for _, pair := range pairs {
		if err := core.ValidatePair(pair, indexes); err != nil {
			return nil, err
		}
	}

	o.logger.Info("diagnostic run starting",
		"query", o.cfg.Query,
		"strategies", len(pairs),
		"workers", o.workers)
	o.monitor.RunStarted(o.cfg.Query, pairs)

	var (
		runLog     []*core.StrategyResult
		anomalies  []core.AnomalyRecord
		best       core.BestAnswer
		reconciler = NewReconciler(&best)
		perf       = NewPerfAggregator()
	)

	absorb := func(u unit) {
		runLog = append(runLog, u.result)
		for _, record := range u.anomalies {
			anomalies = append(anomalies, record)
			o.monitor.AnomalyDetected(record)
		}
		if reconciler.Consider(u.result) {
			o.monitor.BestAnswerImproved(reconciler.Best())
		}
		perf.Record(u.result)
		o.monitor.StrategyFinished(u.result)
	}

	if o.workers > 1 {
		if err := o.runPooled(ctx, pairs, absorb); err != nil {
			return nil, err
		}
	} else {
		for _, pair := range pairs {
			if ctx.Err() != nil {
				o.logger.Warn("run interrupted", "completed", len(runLog), "total", len(pairs))
				break
			}
			o.monitor.StrategyStarted(pair)
			result, records := o.runner.Run(ctx, pair)
			absorb(unit{result: result, anomalies: records})
		}
	}

	o.monitor.RunFinished(runLog)

	generator := report.NewGenerator(report.WithTopDocuments(o.cfg.TopDocuments))
	summary := generator.Generate(o.cfg.Query, runLog, reconciler.Best(), anomalies, perf.Summarize())

	o.logger.Info("diagnostic run completed",
		"executed", len(runLog),
		"anomalies", len(anomalies),
		"passed", summary.HasPass())
	return summary, nil
}

// runPooled executes strategies on an ants pool. Results flow through a
// channel to this goroutine, which stays the single writer of run state.
func (o *Orchestrator) runPooled(ctx context.Context, pairs []core.Pair, absorb func(unit)) error {
	pool, err := ants.NewPool(o.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	results := make(chan unit, len(pairs))
	var wg sync.WaitGroup

	for _, pair := range pairs {
		if ctx.Err() != nil {
			o.logger.Warn("run interrupted", "remaining", len(pairs))
			break
		}
		o.monitor.StrategyStarted(pair)
		p := pair
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			result, records := o.runner.Run(ctx, p)
			results <- unit{result: result, anomalies: records}
		})
		if submitErr != nil {
			// Pool refused the task; run it inline rather than dropping it.
			result, records := o.runner.Run(ctx, p)
			results <- unit{result: result, anomalies: records}
			wg.Done()
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for u := range results {
		absorb(u)
	}
	return nil
}
