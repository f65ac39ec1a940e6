package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avoronov/docqa/internal/core/domain"
)

type processRepoFake struct {
	doc      *domain.Document
	getErr   error
	statuses []domain.DocumentStatus
	errors   []string
	readyID  string
	readyCnt int
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error {
	return errors.New("not implemented")
}

func (f *processRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.doc == nil || f.doc.ID != id {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("no rows"))
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMsg string) error {
	f.statuses = append(f.statuses, status)
	f.errors = append(f.errors, errMsg)
	return nil
}

func (f *processRepoFake) MarkReady(_ context.Context, id string, chunkCount int) error {
	f.readyID = id
	f.readyCnt = chunkCount
	return nil
}

type extractorFake struct {
	pages []string
	err   error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) ([]string, error) {
	return f.pages, f.err
}

type chunkerFake struct {
	chunks []string
}

func (f *chunkerFake) Split(string) []string { return f.chunks }

type embedderFake struct {
	vectors [][]float32
	err     error
	batches [][]string
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *embedderFake) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

type indexFake struct {
	entries []domain.IndexEntry
	err     error
}

func (f *indexFake) Upsert(_ context.Context, entries []domain.IndexEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *indexFake) Query(context.Context, []float32, int) ([]domain.RetrievedChunk, error) {
	return nil, errors.New("not implemented")
}

func readyDoc() *domain.Document {
	return &domain.Document{
		ID:          "doc-1",
		Filename:    "paper.pdf",
		StoragePath: "doc-1_paper.pdf",
		Status:      domain.StatusUploaded,
	}
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: readyDoc()}
	index := &indexFake{}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{pages: []string{"first page text", "", "second page text"}},
		&chunkerFake{chunks: []string{"chunk one", "chunk two"}},
		&embedderFake{vectors: [][]float32{{0.1, 0.2}, {0.3, 0.4}}},
		index,
	)

	count, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 chunks, got %d", count)
	}
	if repo.readyID != "doc-1" || repo.readyCnt != 2 {
		t.Fatalf("expected MarkReady(doc-1, 2), got (%s, %d)", repo.readyID, repo.readyCnt)
	}
	if len(index.entries) != 2 {
		t.Fatalf("expected 2 index entries, got %d", len(index.entries))
	}
	if index.entries[0].ID == index.entries[1].ID {
		t.Fatalf("expected unique point ids")
	}
	for i, entry := range index.entries {
		if entry.Payload.Source != "paper.pdf" {
			t.Fatalf("entry %d: expected source paper.pdf, got %s", i, entry.Payload.Source)
		}
	}
	if index.entries[0].Payload.Text != "chunk one" || index.entries[1].Payload.Text != "chunk two" {
		t.Fatalf("expected chunk order preserved, got %+v", index.entries)
	}
}

func TestProcessByIDEmptyDocument(t *testing.T) {
	repo := &processRepoFake{doc: readyDoc()}
	index := &indexFake{}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{pages: []string{"", "  "}},
		&chunkerFake{chunks: nil},
		&embedderFake{},
		index,
	)

	count, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 chunks, got %d", count)
	}
	if repo.readyCnt != 0 || repo.readyID != "doc-1" {
		t.Fatalf("expected empty document marked ready")
	}
	if len(index.entries) != 0 {
		t.Fatalf("expected no index writes for empty document")
	}
}

func TestProcessByIDExtractorFailureMarksFailed(t *testing.T) {
	repo := &processRepoFake{doc: readyDoc()}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{err: errors.New("corrupted xref table")},
		&chunkerFake{},
		&embedderFake{},
		&indexFake{},
	)

	_, err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statuses) < 2 {
		t.Fatalf("expected processing then failed, got %v", repo.statuses)
	}
	last := repo.statuses[len(repo.statuses)-1]
	if last != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", last)
	}
	if !strings.Contains(repo.errors[len(repo.errors)-1], "corrupted xref table") {
		t.Fatalf("expected error message recorded, got %v", repo.errors)
	}
}

func TestProcessByIDEmbeddingCountMismatch(t *testing.T) {
	repo := &processRepoFake{doc: readyDoc()}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{pages: []string{"some text"}},
		&chunkerFake{chunks: []string{"a", "b"}},
		&embedderFake{vectors: [][]float32{{0.1}}},
		&indexFake{},
	)

	_, err := uc.ProcessByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcessByIDIndexFailurePropagatesKind(t *testing.T) {
	repo := &processRepoFake{doc: readyDoc()}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{pages: []string{"some text"}},
		&chunkerFake{chunks: []string{"a"}},
		&embedderFake{vectors: [][]float32{{0.1}}},
		&indexFake{err: domain.WrapError(domain.ErrIndexUnavailable, "upsert points", errors.New("503"))},
	)

	_, err := uc.ProcessByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
