package usecase

import (
	"context"
	"fmt"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// RetrieveUseCase embeds a question with the same embedder used at ingest
// time and returns the index's top hits in its similarity order.
type RetrieveUseCase struct {
	embedder ports.Embedder
	index    ports.VectorIndex
	topK     int
}

func NewRetrieveUseCase(embedder ports.Embedder, index ports.VectorIndex, topK int) *RetrieveUseCase {
	if topK <= 0 {
		topK = 3
	}
	return &RetrieveUseCase{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve returns an empty slice when the index has no hits; the caller
// decides what an empty context means.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 {
		topK = uc.topK
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := uc.index.Query(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("query vector index: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		hit.Score = domain.RoundScore(hit.Score)
		out = append(out, hit)
	}
	return out, nil
}
