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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/searchdiag/core"
)

const defaultAPIVersion = "2023-11-01"

// maxErrorExcerpt bounds how much of an error body is kept for diagnostics.
const maxErrorExcerpt = 2048

// Client talks to one search service. It is safe for concurrent use.
type Client struct {
	endpoint   string
	key        string
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIVersion overrides the REST API version.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. for tests or custom TLS.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the search service at endpoint,
// authenticating with the given admin key.
func NewClient(endpoint, key string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		key:        key,
		apiVersion: defaultAPIVersion,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "searchapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs one query against the named physical index.
//
// The returned RawExchange is non-nil whenever a response was received, even
// when err is non-nil, so the caller can classify anomalies on failed calls.
// A nil exchange means the call never came back at all.
func (c *Client) Search(ctx context.Context, index string, q Query) (*Result, *core.RawExchange, error) {
	body, err := json.Marshal(buildRequest(q))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(index), url.QueryEscape(c.apiVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.key)

	c.logger.Debug("search request", "index", index, "semantic", q.Semantic, "vector", len(q.Vector) > 0)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(resp.Body)
	exchange := &core.RawExchange{
		StatusCode:     resp.StatusCode,
		Status:         resp.Status,
		Header:         resp.Header.Clone(),
		BodyBytes:      len(payload),
		RangeRequested: req.Header.Get("Range") != "",
		Elapsed:        time.Since(start),
	}
	if readErr != nil {
		return nil, exchange, fmt.Errorf("read search response: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, exchange, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    excerpt(payload),
		}
	}

	var decoded searchResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, exchange, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	result := &Result{
		Documents: make([]core.Document, 0, len(decoded.Value)),
		Answers:   make([]core.SemanticAnswer, 0, len(decoded.Answers)),
	}
	for _, raw := range decoded.Value {
		result.Documents = append(result.Documents, parseDocument(raw))
	}
	for _, raw := range decoded.Answers {
		answer := core.SemanticAnswer{Text: raw.Text}
		answer.Score, _ = asFloat(raw.Score)
		result.Answers = append(result.Answers, answer)
	}

	c.logger.Debug("search response",
		"index", index,
		"status", resp.StatusCode,
		"documents", len(result.Documents),
		"answers", len(result.Answers),
		"elapsed", exchange.Elapsed)

	return result, exchange, nil
}

func buildRequest(q Query) searchRequest {
	req := searchRequest{
		Search:     q.Text,
		Top:        q.Top,
		SearchMode: q.SearchMode,
	}
	if q.Semantic {
		req.QueryType = "semantic"
		req.SemanticConfiguration = q.SemanticConfiguration
		req.Captions = "extractive"
		req.Answers = "extractive"
	}
	if len(q.SelectFields) > 0 {
		req.Select = strings.Join(q.SelectFields, ",")
	}
	if len(q.Vector) > 0 {
		req.VectorQueries = []vectorQuery{{
			Kind:   "vector",
			Vector: q.Vector,
			K:      q.VectorK,
			Fields: q.VectorField,
		}}
	}
	return req
}

func excerpt(body []byte) string {
	if len(body) > maxErrorExcerpt {
		body = body[:maxErrorExcerpt]
	}
	return strings.TrimSpace(string(body))
}
