package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"researchbot/internal/domain"
	"researchbot/internal/llm"
)

// NoSourcesAnswer es la respuesta fija cuando no hay fuentes scrapeables.
const NoSourcesAnswer = "I could not extract content from the provided URLs. Please verify the links and try again."

const (
	answerTemperature = 0.3
	answerTopP        = 0.8
)

// AnswerService genera respuestas fundamentadas en las fuentes recolectadas.
type AnswerService struct {
	client    llm.CompletionClient
	builder   GroundingPromptBuilder
	maxTokens int
	logger    *zap.Logger
}

func NewAnswerService(client llm.CompletionClient, maxTokens int, logger *zap.Logger) *AnswerService {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerService{client: client, maxTokens: maxTokens, logger: logger}
}

// Answer consulta al modelo con el prompt de grounding. Sin fuentes devuelve
// la respuesta fija sin tocar el modelo.
func (s *AnswerService) Answer(ctx context.Context, query string, sources []domain.Source) (string, []domain.Source, error) {
	query = strings.TrimSpace(query)
	if len(sources) == 0 {
		return NoSourcesAnswer, nil, nil
	}

	system, prompt := s.builder.Build(query, sources)
	answer, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: answerTemperature,
		TopP:        answerTopP,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}

	return answer, sources, nil
}
