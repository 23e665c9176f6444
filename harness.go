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


package searchdiag

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/searchdiag/ai"
	"github.com/poiesic/searchdiag/ai/openai"
	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/diagnose"
	"github.com/poiesic/searchdiag/history"
	"github.com/poiesic/searchdiag/searchapi"
)

// Harness wires a validated configuration into a ready-to-run diagnostic:
// search client, optional completion provider, runner, and orchestrator,
// plus the optional run archive.
type Harness struct {
	cfg      *config.Config
	client   *searchapi.Client
	provider ai.Provider // nil without a completion backend
	archive  *history.Store
	monitor  diagnose.RunMonitor
	logger   *slog.Logger
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithRunMonitor installs progress hooks for the run.
func WithRunMonitor(monitor diagnose.RunMonitor) HarnessOption {
	return func(h *Harness) {
		h.monitor = monitor
	}
}

// New builds a harness from the configuration. The configuration is
// validated first; the completion provider is only created when configured.
func New(cfg *config.Config, opts ...HarnessOption) (*Harness, error) {
	if cfg == nil {
		return nil, diagnose.ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:    cfg,
		client: searchapi.NewClient(cfg.Search.Endpoint, cfg.Search.Key, searchapi.WithAPIVersion(cfg.Search.APIVersion)),
		logger: slog.Default().With("component", "harness"),
	}
	for _, opt := range opts {
		opt(h)
	}

	if cfg.HasOpenAI() {
		provider, err := openai.NewProvider(ai.NewConfig(
			ai.WithEndpoint(cfg.OpenAI.Endpoint),
			ai.WithKey(cfg.OpenAI.Key),
			ai.WithAPIVersion(cfg.OpenAI.APIVersion),
			ai.WithCompletionDeployment(cfg.OpenAI.CompletionDeployment),
			ai.WithEmbeddingDeployment(cfg.OpenAI.EmbeddingDeployment),
		))
		if err != nil {
			return nil, err
		}
		h.provider = provider
	} else {
		h.logger.Info("completion backend not configured, hybrid strategies will be skipped")
	}

	if cfg.HistoryPath != "" {
		archive, err := history.Open(cfg.HistoryPath)
		if err != nil {
			h.closeProvider()
			return nil, err
		}
		h.archive = archive
	}

	return h, nil
}

// Run executes the full battery and returns the summary. When an archive is
// configured the summary is persisted before returning; archive failures are
// logged, not fatal, since the diagnostic itself succeeded.
func (h *Harness) Run(ctx context.Context) (*core.DiagnosticSummary, error) {
	runner, err := diagnose.NewRunner(h.client, h.cfg, h.provider)
	if err != nil {
		return nil, err
	}

	orchOpts := []diagnose.OrchestratorOption{diagnose.WithWorkers(h.cfg.Workers)}
	if h.monitor != nil {
		orchOpts = append(orchOpts, diagnose.WithMonitor(h.monitor))
	}
	orchestrator, err := diagnose.NewOrchestrator(runner, h.cfg, orchOpts...)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	summary, err := orchestrator.Run(ctx)
	if err != nil {
		return nil, err
	}

	if h.archive != nil {
		id, archiveErr := h.archive.SaveRun(&history.Record{
			Query:       h.cfg.Query,
			StartedAt:   startedAt,
			CompletedAt: time.Now(),
			Summary:     summary,
		})
		if archiveErr != nil {
			h.logger.Error("failed to archive run", "err", archiveErr)
		} else {
			h.logger.Info("run archived", "id", id)
		}
	}

	return summary, nil
}

// Archive returns the run archive, or nil when archiving is disabled.
func (h *Harness) Archive() *history.Store {
	return h.archive
}

// Close releases the provider and archive.
func (h *Harness) Close() error {
	h.closeProvider()

	if h.archive != nil {
		if err := h.archive.Close(); err != nil {
			h.logger.Error("error closing run archive", "err", err)
			return err
		}
	}
	return nil
}

func (h *Harness) closeProvider() {
	if h.provider == nil {
		return
	}
	if err := h.provider.Close(); err != nil {
		h.logger.Error("error closing completion provider", "err", err)
	}
}
