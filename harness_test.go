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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/searchdiag/config"
	"github.com/poiesic/searchdiag/core"
)

func TestNewValidatesConfig(t *testing.T) {
	cfg := config.Default()
	// No search endpoint or key.
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrSearchEndpointRequired)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestHarnessRunAgainstBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "simplechat-user-index") {
			w.Write([]byte(`{
				"@search.answers": [{"text": "a falafel wrap", "score": 1.4}],
				"value": [{"id": "d1", "file_name": "lunch.pdf", "@search.score": 0.8}]
			}`))
			return
		}
		w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Search.Endpoint = server.URL
	cfg.Search.Key = "test-key"

	harness, err := New(cfg)
	require.NoError(t, err)
	defer harness.Close()

	summary, err := harness.Run(context.Background())
	require.NoError(t, err)

	// No completion backend, so the battery has five strategies.
	assert.Len(t, summary.Outcomes, 5)
	assert.True(t, summary.HasPass())
	assert.Equal(t, 1.4, summary.BestAnswer.Score)
	assert.Equal(t, "a falafel wrap", summary.BestAnswer.SemanticAnswer)
	require.Len(t, summary.TopDocuments, 1)
	assert.Equal(t, "lunch.pdf", summary.TopDocuments[0].Name)
	assert.Nil(t, harness.Archive())
}

func TestHarnessRunWithPartialContentBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body["queryType"] == "semantic" {
			w.WriteHeader(http.StatusPartialContent)
			w.Write([]byte(`partial`))
			return
		}
		w.Write([]byte(`{"value": [{"id": "d1", "@search.score": 0.5}]}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Search.Endpoint = server.URL
	cfg.Search.Key = "test-key"

	harness, err := New(cfg)
	require.NoError(t, err)
	defer harness.Close()

	summary, err := harness.Run(context.Background())
	require.NoError(t, err)

	// Basic strategies pass, every semantic one hits the 206.
	assert.True(t, summary.HasPass())
	assert.Equal(t, core.OutcomePass, summary.Outcomes["basic/user"])
	assert.Equal(t, core.OutcomeError, summary.Outcomes["semantic/user"])
	assert.Equal(t, core.OutcomeError, summary.Outcomes["semantic_filtered/group"])

	partials := 0
	for _, record := range summary.Anomalies {
		if record.Kind == core.AnomalyPartialContent {
			partials++
		}
	}
	assert.Equal(t, 3, partials)
	assert.Contains(t, summary.Diagnosis, "basic text")
}

func TestHarnessArchivesRuns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": [{"id": "d1", "@search.score": 0.5}]}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Search.Endpoint = server.URL
	cfg.Search.Key = "test-key"
	cfg.HistoryPath = t.TempDir()

	harness, err := New(cfg)
	require.NoError(t, err)
	defer harness.Close()

	_, err = harness.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, harness.Archive())
	records, err := harness.Archive().ListRuns(0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, cfg.Query, records[0].Query)
	assert.True(t, records[0].Summary.HasPass())
}
