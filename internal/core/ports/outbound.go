package ports

import (
	"context"
	"io"

	"github.com/avoronov/docqa/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	MarkReady(ctx context.Context, id string, chunkCount int) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts page texts from a stored document, in page order.
// A page with no extractable text is returned as an empty string.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) ([]string, error)
}

// Chunker splits extracted text into embeddable chunks.
type Chunker interface {
	Split(text string) []string
}

// Embedder builds vectors for chunks and query text through one code path.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex owns the single logical collection of index entries.
type VectorIndex interface {
	Upsert(ctx context.Context, entries []domain.IndexEntry) error
	Query(ctx context.Context, queryVector []float32, topK int) ([]domain.RetrievedChunk, error)
}

// AnswerGenerator creates grounded answers and web-search summaries.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error)
	SummarizeSearchResults(ctx context.Context, question, digest string) (string, error)
}

// RouteClassifier asks a completion model which path should answer a query
// and returns the raw reply. Parsing the reply is the caller's concern.
type RouteClassifier interface {
	ClassifyQuery(ctx context.Context, query string) (string, error)
}

// WebSearcher returns a ranked text digest of web results for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) (string, error)
}
