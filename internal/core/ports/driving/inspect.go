package driving

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// Inspector locates literal term occurrences inside a single source
// document, independent of the search backend.
type Inspector interface {
	// Occurrences downloads the document, extracts its pages and scans
	// them for the term, returning per-page matches with highlighted
	// contexts, sorted ascending by page number.
	Occurrences(ctx context.Context, fileID, term string) ([]domain.PageMatch, error)
}
