package domain

import "time"

// Document is the canonical indexable representation of one source file.
// It is built fresh on every ingestion pass from source metadata plus the
// extracted full text; the search backend is responsible for persisting it.
type Document struct {
	// ID is the stable source file identifier. It is the upsert key for
	// the search backend and never changes once assigned.
	ID string

	// Name is the file name as reported by the source.
	Name string

	// FilePath is the fully qualified path within the source hierarchy.
	FilePath string

	// WebViewLink is the external reference URL for opening the file.
	WebViewLink string

	// Content is the cleaned text of every retained page joined by a
	// single newline, in page order. Derived, never hand-edited.
	Content string

	// CreatedTime is the source creation timestamp.
	CreatedTime time.Time

	// ModifiedTime is the source modification timestamp.
	ModifiedTime time.Time

	// Size is the file size in bytes. Zero when the source omits it.
	Size int64

	// MIMEType is the content type reported by the source, if any.
	MIMEType string
}

// SearchHit is a single ranked result from the search backend.
// Hits are constructed per query and never stored.
type SearchHit struct {
	// FilePath is the fully qualified source path of the matched document.
	FilePath string

	// Name is the document name.
	Name string

	// WebViewLink is the external reference URL.
	WebViewLink string

	// Score is the backend relevance score. Non-negative, backend-defined
	// scale, higher is more relevant.
	Score float64

	// Highlights contains backend-generated snippets keyed by field.
	Highlights map[string][]string
}
