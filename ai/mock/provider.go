package mock

import "github.com/poiesic/searchdiag/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockGenerator(),
	}
}

// NewMockProviderWithServices creates a provider from pre-configured mocks.
func NewMockProviderWithServices(embedder *MockEmbedder, generator *MockGenerator) *MockProvider {
	return &MockProvider{embedder: embedder, generator: generator}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock answer generation service.
func (p *MockProvider) Generator() ai.AnswerGenerator {
	return p.generator
}

// GetMockEmbedder returns the concrete mock for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete mock for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
