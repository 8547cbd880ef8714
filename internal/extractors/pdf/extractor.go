// Package pdf extracts paginated text from PDF bytes using pdfcpu.
// It produces either a single trimmed full-text string or ordered page
// records with cleaning applied and per-page statistics.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
	"github.com/custodia-labs/docfind/internal/pagetext"
)

// MinPageChars is the minimal-content threshold: a page is kept in page
// mode only when its raw text holds strictly more characters than this.
const MinPageChars = 10

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor converts raw PDF bytes into text. It performs no external
// I/O; malformed input returns an error wrapping domain.ErrExtraction
// rather than crashing the caller.
type Extractor struct {
	conf *model.Configuration
}

// New creates a PDF extractor with the default pdfcpu configuration.
func New() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// FullText extracts the cleaned text of every page that is non-empty
// after trimming, joined by single newlines and trimmed as a whole.
// Returns "" with a nil error when nothing was extractable; callers
// treat that as a soft failure, not a fatal one.
func (e *Extractor) FullText(data []byte) (string, error) {
	ctx, err := e.read(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := strings.TrimSpace(pagetext.Clean(pageText(ctx, pageNr)))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}

	return strings.TrimSpace(sb.String()), nil
}

// Pages extracts ordered page records. Pages whose raw text length is at
// or below MinPageChars are dropped entirely, never represented as empty
// records. Page numbers are 1-indexed document order.
func (e *Extractor) Pages(data []byte) ([]domain.Page, error) {
	ctx, err := e.read(data)
	if err != nil {
		return nil, err
	}

	dims, err := ctx.PageDims()
	if err != nil {
		dims = nil
	}

	var pages []domain.Page
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		raw := pageText(ctx, pageNr)
		if pagetext.CharCount(raw) <= MinPageChars {
			continue
		}

		text := strings.TrimSpace(pagetext.Clean(raw))
		page := domain.Page{
			Number:    pageNr,
			Text:      text,
			RawText:   raw,
			WordCount: pagetext.WordCount(text),
			CharCount: pagetext.CharCount(text),
		}
		if pageNr <= len(dims) {
			page.Width = dims[pageNr-1].Width
			page.Height = dims[pageNr-1].Height
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// read parses and validates the document structure.
func (e *Extractor) read(data []byte) (*model.Context, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	return ctx, nil
}
