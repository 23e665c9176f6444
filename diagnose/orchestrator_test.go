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
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
	"github.com/poiesic/searchdiag/searchapi"
)

// scriptedClient returns canned responses keyed by physical index name and
// query shape, covering every strategy in the battery.
type scriptedClient struct {
	mu        sync.Mutex
	responses map[string]scriptedResponse
	calls     int
}

type scriptedResponse struct {
	result   *searchapi.Result
	exchange *core.RawExchange
	err      error
}

func (s *scriptedClient) Search(_ context.Context, index string, q searchapi.Query) (*searchapi.Result, *core.RawExchange, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	key := index
	if q.Semantic {
		key += "/semantic"
	}
	if resp, ok := s.responses[key]; ok {
		return resp.result, resp.exchange, resp.err
	}
	return &searchapi.Result{}, okExchange(27), nil
}

func passResponse(docScore float64, answerScore float64) scriptedResponse {
	result := &searchapi.Result{
		Documents: []core.Document{{ID: "d1", Name: "lunch.pdf", Score: docScore, Scored: true}},
	}
	if answerScore > 0 {
		result.Answers = []core.SemanticAnswer{{Text: "falafel wrap", Score: answerScore}}
	}
	return scriptedResponse{result: result, exchange: okExchange(512)}
}

func newTestOrchestrator(t *testing.T, client SearchClient, cfg *config.Config, opts ...OrchestratorOption) *Orchestrator {
	t.Helper()
	runner, err := NewRunner(client, cfg, nil)
	require.NoError(t, err)
	orch, err := NewOrchestrator(runner, cfg, opts...)
	require.NoError(t, err)
	return orch
}

func TestDefaultBatteryOrder(t *testing.T) {
	t.Run("without completion backend", func(t *testing.T) {
		cfg := testConfig()
		pairs := DefaultBattery(cfg)

		want := []core.Pair{
			{Strategy: core.StrategyBasic, Index: "user"},
			{Strategy: core.StrategyBasic, Index: "group"},
			{Strategy: core.StrategySemantic, Index: "user"},
			{Strategy: core.StrategySemantic, Index: "group"},
			{Strategy: core.StrategySemanticFiltered, Index: "group"},
		}
		assert.Equal(t, want, pairs)
	})

	t.Run("with completion backend", func(t *testing.T) {
		cfg := testConfig()
		cfg.OpenAI.Endpoint = "https://openai.test"
		cfg.OpenAI.Key = "test-key"
		pairs := DefaultBattery(cfg)

		require.Len(t, pairs, 9)
		assert.Equal(t, core.Pair{Strategy: core.StrategyHybridBasic, Index: "user"}, pairs[5])
		assert.Equal(t, core.Pair{Strategy: core.StrategyHybridSemantic, Index: "group"}, pairs[8])
	})
}

func TestOrchestratorRun(t *testing.T) {
	client := &scriptedClient{
		responses: map[string]scriptedResponse{
			"simplechat-user-index":           passResponse(0.8, 0),
			"simplechat-user-index/semantic":  passResponse(0.5, 1.4),
			"simplechat-group-index":          passResponse(0.03, 0),
			"simplechat-group-index/semantic": passResponse(0.02, 0),
		},
	}
	cfg := testConfig()
	orch := newTestOrchestrator(t, client, cfg)

	require.Equal(t, StateNotStarted, orch.State())

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateCompleted, orch.State())

	assert.Len(t, summary.Outcomes, 5)
	assert.True(t, summary.HasPass())
	assert.Equal(t, core.OutcomePass, summary.Outcomes["basic/user"])
	assert.Equal(t, core.OutcomePass, summary.Outcomes["semantic_filtered/group"])

	// The semantic answer on the user index is the highest-scoring candidate.
	assert.True(t, summary.BestAnswer.Scored)
	assert.Equal(t, 1.4, summary.BestAnswer.Score)
	assert.Equal(t, core.StrategySemantic, summary.BestAnswer.Provenance.Strategy)
	assert.Equal(t, "user", summary.BestAnswer.Provenance.Index)
	assert.Equal(t, "falafel wrap", summary.BestAnswer.SemanticAnswer)

	assert.Equal(t, 5, summary.Performance.Overall.Count)
	assert.NotEmpty(t, summary.Diagnosis)
}

func TestOrchestratorAllErrorsStillCompletes(t *testing.T) {
	failing := &core.RawExchange{
		StatusCode: http.StatusServiceUnavailable,
		Status:     "503 Service Unavailable",
		Header:     http.Header{},
		BodyBytes:  10,
	}
	httpErr := &searchapi.HTTPError{StatusCode: http.StatusServiceUnavailable, Status: "503 Service Unavailable"}
	client := &scriptedClient{
		responses: map[string]scriptedResponse{
			"simplechat-user-index":           {exchange: failing, err: httpErr},
			"simplechat-user-index/semantic":  {exchange: failing, err: httpErr},
			"simplechat-group-index":          {exchange: failing, err: httpErr},
			"simplechat-group-index/semantic": {exchange: failing, err: httpErr},
		},
	}
	orch := newTestOrchestrator(t, client, testConfig())

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, orch.State())

	assert.False(t, summary.HasPass())
	assert.False(t, summary.BestAnswer.Scored)
	assert.Len(t, summary.Anomalies, 5)
	for _, record := range summary.Anomalies {
		assert.Equal(t, core.AnomalyOtherNon200, record.Kind)
	}
}

func TestOrchestratorRejectsSecondRun(t *testing.T) {
	client := &scriptedClient{responses: map[string]scriptedResponse{}}
	orch := newTestOrchestrator(t, client, testConfig())

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunAlreadyStarted)
}

func TestOrchestratorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{responses: map[string]scriptedResponse{}}
	orch := newTestOrchestrator(t, client, testConfig())

	summary, err := orch.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, orch.State())

	// Nothing dispatched, but the summary still exists.
	assert.Empty(t, summary.Outcomes)
	assert.Zero(t, client.calls)
	assert.False(t, summary.HasPass())
}

func TestOrchestratorPooledMatchesSequential(t *testing.T) {
	newClient := func() *scriptedClient {
		return &scriptedClient{
			responses: map[string]scriptedResponse{
				"simplechat-user-index":           passResponse(0.8, 0),
				"simplechat-user-index/semantic":  passResponse(0.5, 1.4),
				"simplechat-group-index":          passResponse(0.03, 0),
				"simplechat-group-index/semantic": passResponse(0.02, 0),
			},
		}
	}

	sequential := newTestOrchestrator(t, newClient(), testConfig())
	seqSummary, err := sequential.Run(context.Background())
	require.NoError(t, err)

	pooled := newTestOrchestrator(t, newClient(), testConfig(), WithWorkers(4))
	poolSummary, err := pooled.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seqSummary.Outcomes, poolSummary.Outcomes)
	assert.Equal(t, seqSummary.BestAnswer.Score, poolSummary.BestAnswer.Score)
	assert.Equal(t, seqSummary.BestAnswer.Provenance, poolSummary.BestAnswer.Provenance)
	assert.Equal(t, seqSummary.TopDocuments, poolSummary.TopDocuments)
	assert.Equal(t, seqSummary.Diagnosis, poolSummary.Diagnosis)
}

// recordingMonitor captures hook invocations for assertions.
type recordingMonitor struct {
	mu        sync.Mutex
	started   []core.Pair
	finished  []core.Pair
	anomalies int
	improved  int
	runDone   bool
}

func (m *recordingMonitor) RunStarted(_ string, _ []core.Pair) {}

func (m *recordingMonitor) StrategyStarted(pair core.Pair) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, pair)
}

func (m *recordingMonitor) StrategyFinished(result *core.StrategyResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, result.Pair())
}

func (m *recordingMonitor) AnomalyDetected(_ core.AnomalyRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomalies++
}

func (m *recordingMonitor) BestAnswerImproved(_ core.BestAnswer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.improved++
}

func (m *recordingMonitor) RunFinished(_ []*core.StrategyResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runDone = true
}

func TestOrchestratorMonitorHooks(t *testing.T) {
	client := &scriptedClient{
		responses: map[string]scriptedResponse{
			"simplechat-user-index":          passResponse(0.8, 0),
			"simplechat-user-index/semantic": passResponse(0.5, 1.4),
		},
	}
	monitor := &recordingMonitor{}
	orch := newTestOrchestrator(t, client, testConfig(), WithMonitor(monitor))

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, monitor.started, 5)
	assert.Len(t, monitor.finished, 5)
	assert.True(t, monitor.runDone)
	// 0.8 then 1.4, both improvements.
	assert.Equal(t, 2, monitor.improved)
}
