package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/searchdiag/ai"
)

const (
	// maxContextDocuments limits how many hits are quoted in the prompt.
	maxContextDocuments = 3

	// maxChunkChars truncates quoted chunk text.
	maxChunkChars = 500
)

const answerSystemPrompt = "You are a helpful assistant that answers questions based on provided context."

// buildAnswerPrompt renders the user message for an enhanced-answer request:
// semantic answers first, then the top document chunks, truncated.
func buildAnswerPrompt(req ai.AnswerRequest) string {
	var semantic strings.Builder
	for i, answer := range req.SemanticAnswers {
		fmt.Fprintf(&semantic, "Semantic Answer %d: %s\n", i+1, answer)
	}

	var context strings.Builder
	docs := req.Documents
	if len(docs) > maxContextDocuments {
		docs = docs[:maxContextDocuments]
	}
	for i, doc := range docs {
		text := doc.Text
		if text == "" {
			continue
		}
		if len(text) > maxChunkChars {
			text = text[:maxChunkChars] + "..."
		}
		name := doc.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&context, "Document %d (%s):\n%s\n\n", i+1, name, text)
	}

	return fmt.Sprintf(`Based on the following search results and semantic answers, provide a clear, concise answer to the user's question.

User Question: %s

Semantic Answers from the search service:
%s
Additional Context from Documents:
%s
Please provide a direct, helpful answer based on this information. If the information is insufficient, say so.`,
		req.Query, semantic.String(), context.String())
}
