package usecase

import (
	"context"
	"fmt"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// AnswerUseCase turns retrieved chunks into a grounded answer.
type AnswerUseCase struct {
	generator ports.AnswerGenerator
}

func NewAnswerUseCase(generator ports.AnswerGenerator) *AnswerUseCase {
	return &AnswerUseCase{generator: generator}
}

// Generate short-circuits on an empty context: answering from nothing would
// only invite hallucination, and the completion call costs money.
func (uc *AnswerUseCase) Generate(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error) {
	if len(chunks) == 0 {
		return domain.NoAnswerSentinel, nil
	}

	answer, err := uc.generator.GenerateAnswer(ctx, question, chunks)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}
