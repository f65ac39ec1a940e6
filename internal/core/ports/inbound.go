package ports

import (
	"context"
	"io"

	"github.com/avoronov/docqa/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// processing. It reports the number of chunks stored in the index.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (int, error)
}

// QuestionService answers a user question, routing between the document
// index and the web search fallback.
type QuestionService interface {
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}
