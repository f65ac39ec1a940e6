package usecase

import (
	"context"
	"fmt"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// RouteUseCase labels a question with the path that should answer it.
type RouteUseCase struct {
	classifier ports.RouteClassifier
}

func NewRouteUseCase(classifier ports.RouteClassifier) *RouteUseCase {
	return &RouteUseCase{classifier: classifier}
}

// Route propagates classifier failures; it never guesses silently. The
// caller owns the fallback policy for a failed classification.
func (uc *RouteUseCase) Route(ctx context.Context, question string) (domain.Route, error) {
	reply, err := uc.classifier.ClassifyQuery(ctx, question)
	if err != nil {
		return "", fmt.Errorf("classify query: %w", err)
	}
	return domain.ParseRouteReply(reply), nil
}
