package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
	"github.com/custodia-labs/docfind/internal/core/ports/driving"
	"github.com/custodia-labs/docfind/internal/pagesearch"
)

// Ensure Inspector implements the interface.
var _ driving.Inspector = (*Inspector)(nil)

// Inspector locates a term inside a single document, page by page. It
// re-downloads the file so occurrences always reflect the current content
// rather than whatever was indexed.
type Inspector struct {
	source    driven.DocumentSource
	extractor driven.Extractor
}

// NewInspector creates an inspection service.
func NewInspector(source driven.DocumentSource, extractor driven.Extractor) *Inspector {
	return &Inspector{source: source, extractor: extractor}
}

// Occurrences returns the per-page matches of term in the file. A blank
// term is rejected with ErrInvalidQuery; an unknown file surfaces as
// ErrNotFound from the source.
func (i *Inspector) Occurrences(ctx context.Context, fileID, term string) ([]domain.PageMatch, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: empty term", domain.ErrInvalidQuery)
	}

	data, err := i.source.DownloadBytes(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", fileID, err)
	}

	pages, err := i.extractor.Pages(data)
	if err != nil {
		return nil, fmt.Errorf("extract pages of %s: %w", fileID, err)
	}

	return pagesearch.Scan(pages, term), nil
}
