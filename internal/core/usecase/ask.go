package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// AskUseCase answers a question end to end: route it, then either retrieve
// and generate from the document index, or search the web and summarize.
type AskUseCase struct {
	router     *RouteUseCase
	retriever  *RetrieveUseCase
	answerer   *AnswerUseCase
	searcher   ports.WebSearcher
	generator  ports.AnswerGenerator
	numResults int
}

func NewAskUseCase(
	router *RouteUseCase,
	retriever *RetrieveUseCase,
	answerer *AnswerUseCase,
	searcher ports.WebSearcher,
	generator ports.AnswerGenerator,
	numResults int,
) *AskUseCase {
	if numResults <= 0 {
		numResults = 5
	}
	return &AskUseCase{
		router:     router,
		retriever:  retriever,
		answerer:   answerer,
		searcher:   searcher,
		generator:  generator,
		numResults: numResults,
	}
}

func (uc *AskUseCase) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	route, err := uc.router.Route(ctx, question)
	if err != nil {
		// Stated policy: a failed classification falls back to the web
		// path rather than aborting the question.
		slog.Warn("route_classification_failed", "error", err)
		route = domain.RouteWeb
	}

	if route == domain.RouteDocuments {
		return uc.askDocuments(ctx, question, topK)
	}
	return uc.askWeb(ctx, question)
}

func (uc *AskUseCase) askDocuments(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	chunks, err := uc.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve chunks: %w", err)
	}

	text, err := uc.answerer.Generate(ctx, question, chunks)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Text:    text,
		Route:   domain.RouteDocuments,
		Sources: chunks,
	}, nil
}

func (uc *AskUseCase) askWeb(ctx context.Context, question string) (*domain.Answer, error) {
	digest, err := uc.searcher.Search(ctx, question, uc.numResults)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	text, err := uc.generator.SummarizeSearchResults(ctx, question, digest)
	if err != nil {
		return nil, fmt.Errorf("summarize search results: %w", err)
	}

	return &domain.Answer{
		Text:  text,
		Route: domain.RouteWeb,
	}, nil
}
