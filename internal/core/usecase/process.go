package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// ProcessDocumentUseCase runs the asynchronous ingestion pipeline: extract
// page texts, chunk, embed, upsert. Chunk order is preserved end to end so
// vector i always belongs to chunk i.
type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	chunker   ports.Chunker
	embedder  ports.Embedder
	index     ports.VectorIndex
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	index ports.VectorIndex,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
	}
}

// ProcessByID reports the number of chunks stored. A document with no
// extractable text at all is a successful ingest of zero chunks: image-only
// PDFs are a legitimate input, not a failure.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (int, error) {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return 0, fmt.Errorf("set status=processing: %w", err)
	}

	count, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return 0, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return 0, err
	}

	if err := uc.repo.MarkReady(ctx, documentID, count); err != nil {
		return 0, fmt.Errorf("set status=ready: %w", err)
	}
	return count, nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (int, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return 0, err
	}

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := uc.embed(ctx, chunks)
	if err != nil {
		return 0, err
	}

	entries := make([]domain.IndexEntry, 0, len(chunks))
	for i := range chunks {
		entries = append(entries, domain.IndexEntry{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Payload: domain.ChunkPayload{
				Text:   chunks[i],
				Source: doc.Filename,
			},
		})
	}

	if err := uc.index.Upsert(ctx, entries); err != nil {
		return 0, fmt.Errorf("upsert index entries: %w", err)
	}
	return len(entries), nil
}

// extractText joins non-empty page texts in page order. Pages without
// extractable text are skipped without failing the document.
func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	pages, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	kept := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		kept = append(kept, page)
	}
	return strings.Join(kept, "\n"), nil
}

func (uc *ProcessDocumentUseCase) embed(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors, err := uc.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}
	return vectors, nil
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
