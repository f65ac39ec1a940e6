package extractor

import (
	"context"
	"testing"

	"github.com/avoronov/docqa/internal/core/domain"
)

type markerExtractor struct {
	marker string
}

func (e *markerExtractor) Extract(context.Context, *domain.Document) ([]string, error) {
	return []string{e.marker}, nil
}

func TestDispatcherByExtension(t *testing.T) {
	d := NewDispatcher(
		&markerExtractor{marker: "pdf"},
		&markerExtractor{marker: "spreadsheet"},
		&markerExtractor{marker: "plaintext"},
	)

	cases := []struct {
		filename string
		want     string
	}{
		{"thesis.pdf", "pdf"},
		{"Thesis.PDF", "pdf"},
		{"grades.xlsx", "spreadsheet"},
		{"macro.xlsm", "spreadsheet"},
		{"notes.txt", "plaintext"},
		{"README.md", "plaintext"},
		{"no_extension", "plaintext"},
	}

	for _, tc := range cases {
		pages, err := d.Extract(context.Background(), &domain.Document{Filename: tc.filename})
		if err != nil {
			t.Fatalf("%s: Extract() error = %v", tc.filename, err)
		}
		if pages[0] != tc.want {
			t.Errorf("%s: routed to %s, want %s", tc.filename, pages[0], tc.want)
		}
	}
}
