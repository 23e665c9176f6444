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


package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSuccess(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"@search.answers": [{"text": "a falafel wrap", "score": 0.97}],
			"value": [
				{"id": "doc-1", "file_name": "lunch.pdf", "chunk_text": "Ahmed had falafel", "@search.score": 1.42,
				 "@search.captions": [{"text": "Ahmed had falafel..."}]},
				{"id": "doc-2", "file_name": "memo.docx", "@search.score": "N/A"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", WithAPIVersion("2023-11-01"))
	result, exchange, err := client.Search(context.Background(), "simplechat-user-index", Query{
		Text:                  "what did Ahmed have for lunch",
		Top:                   5,
		Semantic:              true,
		SemanticConfiguration: "nexus-user-index-semantic-configuration",
	})
	require.NoError(t, err)

	assert.Equal(t, "/indexes/simplechat-user-index/docs/search", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "2023-11-01", gotVersion)
	assert.Equal(t, "semantic", gotBody["queryType"])
	assert.Equal(t, "nexus-user-index-semantic-configuration", gotBody["semanticConfiguration"])
	assert.Equal(t, "extractive", gotBody["captions"])
	assert.Equal(t, "extractive", gotBody["answers"])

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "doc-1", result.Documents[0].ID)
	assert.Equal(t, "lunch.pdf", result.Documents[0].Name)
	assert.Equal(t, "Ahmed had falafel", result.Documents[0].Content)
	assert.True(t, result.Documents[0].Scored)
	assert.Equal(t, 1.42, result.Documents[0].Score)
	assert.Equal(t, "Ahmed had falafel...", result.Documents[0].Caption)

	// Loose wire score collapses to the unscored variant.
	assert.False(t, result.Documents[1].Scored)

	require.Len(t, result.Answers, 1)
	assert.Equal(t, "a falafel wrap", result.Answers[0].Text)
	assert.Equal(t, 0.97, result.Answers[0].Score)

	require.NotNil(t, exchange)
	assert.Equal(t, http.StatusOK, exchange.StatusCode)
	assert.Greater(t, exchange.BodyBytes, 0)
	assert.Greater(t, exchange.Elapsed.Nanoseconds(), int64(0))
}

func TestSearchVectorQueryOnWire(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, _, err := client.Search(context.Background(), "idx", Query{
		Text:        "q",
		Vector:      []float32{0.1, 0.2},
		VectorK:     5,
		VectorField: "embedding",
	})
	require.NoError(t, err)

	queries, ok := gotBody["vectorQueries"].([]any)
	require.True(t, ok)
	require.Len(t, queries, 1)
	vq := queries[0].(map[string]any)
	assert.Equal(t, "vector", vq["kind"])
	assert.Equal(t, "embedding", vq["fields"])
	assert.Equal(t, float64(5), vq["k"])
}

func TestSearchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong")
	result, exchange, err := client.Search(context.Background(), "idx", Query{Text: "q"})

	assert.Nil(t, result)
	require.NotNil(t, exchange)
	assert.Equal(t, http.StatusForbidden, exchange.StatusCode)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "bad key")
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}

func TestSearchPartialContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	result, exchange, err := client.Search(context.Background(), "idx", Query{Text: "q"})

	// 206 never decodes, even with a well-formed body.
	assert.Nil(t, result)
	require.NotNil(t, exchange)
	assert.Equal(t, http.StatusPartialContent, exchange.StatusCode)
	assert.Equal(t, http.StatusPartialContent, StatusOf(err))
}

func TestSearchMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": [truncated`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	result, exchange, err := client.Search(context.Background(), "idx", Query{Text: "q"})

	assert.Nil(t, result)
	require.NotNil(t, exchange)
	assert.Equal(t, http.StatusOK, exchange.StatusCode)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Zero(t, StatusOf(err))
}

func TestSearchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret")
	result, exchange, err := client.Search(context.Background(), "idx", Query{Text: "q"})

	assert.Nil(t, result)
	assert.Nil(t, exchange)
	assert.Error(t, err)
}

func TestSearchContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "secret")
	_, _, err := client.Search(ctx, "idx", Query{Text: "q"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDocumentFallsBackToName(t *testing.T) {
	doc := parseDocument(map[string]any{
		"file_name":     "orphan.pdf",
		"@search.score": 0.5,
	})
	assert.Equal(t, "orphan.pdf", doc.ID)
	assert.Equal(t, "orphan.pdf", doc.Name)
	assert.True(t, doc.Scored)
}
