package ai

import "context"

// Embedder generates vector embeddings from text for vectorized search queries.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// ContextDocument is one retrieved document offered to the answer generator
// as grounding context.
type ContextDocument struct {
	// Name identifies the document to the reader (typically a file name).
	Name string

	// Text is the document chunk contents. Long chunks are truncated by the
	// generator before prompting.
	Text string
}

// AnswerRequest carries everything the generator needs to synthesize an
// enhanced answer for one strategy's results.
type AnswerRequest struct {
	// Query is the user's original question.
	Query string

	// SemanticAnswers are extractive answers returned by the search backend.
	SemanticAnswers []string

	// Documents are the top search hits, in backend order.
	Documents []ContextDocument
}

// AnswerGenerator produces a generated answer grounded in search results.
// Implementations must be thread-safe for concurrent use.
type AnswerGenerator interface {
	// GenerateAnswer returns a direct answer to the query based on the
	// provided context, or an error if the completion call fails.
	GenerateAnswer(ctx context.Context, req AnswerRequest) (string, error)
}

// Provider aggregates the completion backend services for convenient
// initialization and lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the answer generation service.
	Generator() AnswerGenerator

	// Close releases resources held by the provider and its services.
	Close() error
}
