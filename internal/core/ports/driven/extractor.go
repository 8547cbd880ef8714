package driven

import "github.com/custodia-labs/docfind/internal/core/domain"

// Extractor converts raw page-oriented document bytes into text.
// Implementations perform no external I/O.
type Extractor interface {
	// FullText returns the cleaned text of every retained page joined by
	// single newlines and trimmed. An empty string with a nil error is a
	// soft signal that nothing was extractable.
	FullText(data []byte) (string, error)

	// Pages returns the retained pages in document order. Pages whose
	// raw text is at or below the minimal-content threshold are dropped.
	Pages(data []byte) ([]domain.Page, error)
}
