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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/searchdiag/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completion parameters for enhanced answers.
const (
	answerMaxTokens   = 300
	answerTemperature = 0.3
)

// ErrNoCompletion is returned when the model produces no choices.
var ErrNoCompletion = errors.New("completion returned no choices")

// Generator implements ai.AnswerGenerator using an Azure OpenAI chat deployment.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Endpoint),
		openai.WithToken(config.Key),
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithAPIVersion(config.APIVersion),
		openai.WithModel(config.CompletionDeployment),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new answer generator using the provided configuration.
//
// Returns ai.AnswerGenerator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.AnswerGenerator, error) {
	return newGenerator(config)
}

// GenerateAnswer synthesizes an enhanced answer from search results.
func (g *Generator) GenerateAnswer(ctx context.Context, req ai.AnswerRequest) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(answerSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnswerPrompt(req)),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(answerTemperature),
		llms.WithMaxTokens(answerMaxTokens),
	)
	if err != nil {
		g.logger.Error("completion failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", ErrNoCompletion
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
