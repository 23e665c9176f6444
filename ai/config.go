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


package ai

import (
	"errors"
	"strings"
)

// Config holds connection settings for an Azure OpenAI-compatible service.
type Config struct {
	// Endpoint is the base URL of the service.
	// Example: "https://myservice.openai.azure.com"
	Endpoint string

	// Key is the API key sent with every request.
	Key string

	// APIVersion is the Azure OpenAI API version.
	// Default: "2024-02-01"
	APIVersion string

	// CompletionDeployment is the deployment name of the chat model used for
	// enhanced answers. Example: "gpt-4.1"
	CompletionDeployment string

	// EmbeddingDeployment is the deployment name of the embedding model.
	// Example: "text-embedding-ada-002"
	EmbeddingDeployment string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEndpoint sets the service endpoint.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithKey sets the API key.
func WithKey(key string) ConfigOption {
	return func(c *Config) {
		c.Key = key
	}
}

// WithAPIVersion sets the API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithCompletionDeployment sets the chat model deployment name.
func WithCompletionDeployment(name string) ConfigOption {
	return func(c *Config) {
		c.CompletionDeployment = name
	}
}

// WithEmbeddingDeployment sets the embedding model deployment name.
func WithEmbeddingDeployment(name string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDeployment = name
	}
}

// DefaultConfig returns a Config with the standard deployment names.
// Endpoint and Key have no defaults.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:           "2024-02-01",
		CompletionDeployment: "gpt-4.1",
		EmbeddingDeployment:  "text-embedding-ada-002",
	}
}

// NewConfig creates a Config with defaults and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.APIVersion == "" {
		c.APIVersion = "2024-02-01"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Endpoint == "" {
		return errors.New("ai config: Endpoint is required")
	}
	if c.Key == "" {
		return errors.New("ai config: Key is required")
	}
	if c.CompletionDeployment == "" {
		return errors.New("ai config: CompletionDeployment is required")
	}
	if c.EmbeddingDeployment == "" {
		return errors.New("ai config: EmbeddingDeployment is required")
	}
	return nil
}
