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


package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default deployment and query values.
const (
	DefaultSearchAPIVersion     = "2023-11-01"
	DefaultOpenAIAPIVersion     = "2024-02-01"
	DefaultCompletionDeployment = "gpt-4.1"
	DefaultEmbeddingDeployment  = "text-embedding-ada-002"
	DefaultQuery                = "what did Ahmed have for lunch"
)

// IndexConfig maps a logical index name to its physical search index.
type IndexConfig struct {
	// Name is the logical name used in strategy pairs and reports ("user", "group").
	Name string `yaml:"name"`

	// IndexName is the physical index name on the search service.
	IndexName string `yaml:"index_name"`

	// SemanticConfiguration is the semantic configuration used by semantic strategies.
	SemanticConfiguration string `yaml:"semantic_configuration"`

	// SelectFields is the explicit field list for the filtered semantic strategy.
	SelectFields []string `yaml:"select_fields,omitempty"`

	// VectorField is the embedding field targeted by vectorized queries.
	VectorField string `yaml:"vector_field,omitempty"`
}

// SearchConfig is the search backend connection surface.
type SearchConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Key        string `yaml:"key"`
	APIVersion string `yaml:"api_version,omitempty"`
}

// OpenAIConfig is the optional completion backend connection surface.
type OpenAIConfig struct {
	Endpoint             string `yaml:"endpoint,omitempty"`
	Key                  string `yaml:"key,omitempty"`
	APIVersion           string `yaml:"api_version,omitempty"`
	CompletionDeployment string `yaml:"completion_deployment,omitempty"`
	EmbeddingDeployment  string `yaml:"embedding_deployment,omitempty"`
}

// Config is the complete, immutable run configuration. Build one with Load
// (or New for tests), then treat it as read-only for the run's duration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	OpenAI OpenAIConfig `yaml:"openai"`

	// Query is the target query text sent to every strategy.
	Query string `yaml:"query,omitempty"`

	// Indexes is the set of logical indexes the battery runs against.
	Indexes []IndexConfig `yaml:"indexes,omitempty"`

	// Top is the number of documents requested per search call.
	Top int `yaml:"top,omitempty"`

	// TopDocuments is the size of the report's top-documents list.
	TopDocuments int `yaml:"top_documents,omitempty"`

	// CallTimeout bounds each external call; an expired timeout is treated as
	// a transport error on the affected strategy.
	CallTimeout time.Duration `yaml:"call_timeout,omitempty"`

	// Workers > 1 enables pooled strategy execution. Results are still
	// reconciled by a single writer.
	Workers int `yaml:"workers,omitempty"`

	// HistoryPath is the BadgerDB directory for archived run summaries.
	// Empty disables archiving.
	HistoryPath string `yaml:"history_path,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// Configuration errors are fatal before any strategy runs.
var (
	ErrSearchEndpointRequired = errors.New("config: search endpoint is required")
	ErrSearchKeyRequired      = errors.New("config: search key is required")
	ErrOpenAIIncomplete       = errors.New("config: openai endpoint and key must be set together")
	ErrNoIndexes              = errors.New("config: at least one index is required")
)

// Default returns the built-in configuration: the standard index layout,
// deployments, and query.
func Default() *Config {
	return &Config{
		Search: SearchConfig{APIVersion: DefaultSearchAPIVersion},
		OpenAI: OpenAIConfig{
			APIVersion:           DefaultOpenAIAPIVersion,
			CompletionDeployment: DefaultCompletionDeployment,
			EmbeddingDeployment:  DefaultEmbeddingDeployment,
		},
		Query: DefaultQuery,
		Indexes: []IndexConfig{
			{
				Name:                  "user",
				IndexName:             "simplechat-user-index",
				SemanticConfiguration: "nexus-user-index-semantic-configuration",
				SelectFields:          defaultSelectFields(),
				VectorField:           "embedding",
			},
			{
				Name:                  "group",
				IndexName:             "simplechat-group-index",
				SemanticConfiguration: "nexus-group-index-semantic-configuration",
				SelectFields:          defaultSelectFields(),
				VectorField:           "embedding",
			},
		},
		Top:          5,
		TopDocuments: 3,
		CallTimeout:  30 * time.Second,
		Workers:      1,
		LogLevel:     "info",
	}
}

func defaultSelectFields() []string {
	return []string{
		"id", "chunk_text", "chunk_id", "file_name", "group_id", "version",
		"chunk_sequence", "upload_date", "document_classification",
		"page_number", "author", "chunk_keywords", "title", "chunk_summary",
	}
}

// Load builds a Config from defaults, an optional YAML file, and the
// environment, in that order. Pass an empty path to skip the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Search.Endpoint = envOr("AZURE_AI_SEARCH_ENDPOINT", c.Search.Endpoint)
	c.Search.Key = envOr("AZURE_AI_SEARCH_KEY", c.Search.Key)

	// The embedding-specific variables take precedence when both forms are set.
	c.OpenAI.Endpoint = envOr("AZURE_OPENAI_EMBEDDING_ENDPOINT",
		envOr("AZURE_OPENAI_ENDPOINT", c.OpenAI.Endpoint))
	c.OpenAI.Key = envOr("AZURE_OPENAI_EMBEDDING_KEY",
		envOr("AZURE_OPENAI_KEY", c.OpenAI.Key))
	c.OpenAI.CompletionDeployment = envOr("AZURE_OPENAI_COMPLETION_DEPLOYMENT", c.OpenAI.CompletionDeployment)
	c.OpenAI.EmbeddingDeployment = envOr("AZURE_OPENAI_EMBEDDING_DEPLOYMENT", c.OpenAI.EmbeddingDeployment)

	c.Query = envOr("TEST_QUERY", c.Query)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// HasOpenAI reports whether the completion backend is configured. Hybrid
// strategies and enhanced answers are only attempted when it is.
func (c *Config) HasOpenAI() bool {
	return c.OpenAI.Endpoint != "" && c.OpenAI.Key != ""
}

// IndexNames returns the logical index names in configuration order.
func (c *Config) IndexNames() []string {
	names := make([]string, 0, len(c.Indexes))
	for _, idx := range c.Indexes {
		names = append(names, idx.Name)
	}
	return names
}

// Index returns the configuration for a logical index name.
func (c *Config) Index(name string) (IndexConfig, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return IndexConfig{}, false
}

// Normalize ensures the configuration is in canonical form: endpoints lose
// trailing slashes and empty numeric fields regain their defaults.
func (c *Config) Normalize() {
	c.Search.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Search.Endpoint), "/")
	c.OpenAI.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.OpenAI.Endpoint), "/")
	if c.Search.APIVersion == "" {
		c.Search.APIVersion = DefaultSearchAPIVersion
	}
	if c.OpenAI.APIVersion == "" {
		c.OpenAI.APIVersion = DefaultOpenAIAPIVersion
	}
	if c.Top <= 0 {
		c.Top = 5
	}
	if c.TopDocuments <= 0 {
		c.TopDocuments = 3
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 30 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
}

// Validate checks that the configuration is complete enough to start a run.
// It normalizes first. OpenAI settings are optional but must come in pairs.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Search.Endpoint == "" {
		return ErrSearchEndpointRequired
	}
	if c.Search.Key == "" {
		return ErrSearchKeyRequired
	}
	if (c.OpenAI.Endpoint == "") != (c.OpenAI.Key == "") {
		return ErrOpenAIIncomplete
	}
	if len(c.Indexes) == 0 {
		return ErrNoIndexes
	}
	if strings.TrimSpace(c.Query) == "" {
		return errors.New("config: query cannot be empty")
	}
	for _, idx := range c.Indexes {
		if idx.Name == "" || idx.IndexName == "" {
			return fmt.Errorf("config: index %q needs both a logical and physical name", idx.Name)
		}
	}
	return nil
}
