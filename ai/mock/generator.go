package mock

import (
	"context"

	"github.com/poiesic/searchdiag/ai"
)

// MockGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, a fixed placeholder answer is returned.
	GenerateAnswerFunc func(ctx context.Context, req ai.AnswerRequest) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateAnswer returns the injected behavior's answer or a placeholder.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, req ai.AnswerRequest) (string, error) {
	m.callCount++

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, req)
	}

	return "mock answer for: " + req.Query, nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateAnswerFunc = nil
}
