package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/core/ports"
)

// Dispatcher selects a concrete extractor by filename extension.
type Dispatcher struct {
	pdf         ports.TextExtractor
	spreadsheet ports.TextExtractor
	plaintext   ports.TextExtractor
}

func NewDispatcher(pdf, spreadsheet, plaintext ports.TextExtractor) *Dispatcher {
	return &Dispatcher{
		pdf:         pdf,
		spreadsheet: spreadsheet,
		plaintext:   plaintext,
	}
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) ([]string, error) {
	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return d.pdf.Extract(ctx, doc)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return d.spreadsheet.Extract(ctx, doc)
	default:
		return d.plaintext.Extract(ctx, doc)
	}
}
