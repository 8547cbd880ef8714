package driven

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// SearchEngine is the capability contract a full-text backend must satisfy
// to be used for indexing and querying. There is one production
// implementation (bleve) and one in-memory test double.
//
// The engine handle is safe for concurrent use by the query path and the
// ingestion path; every operation is self-contained.
type SearchEngine interface {
	// IndexDocument upserts a document keyed by its ID. The boolean is
	// the backend's create-or-update outcome indicator: true iff the
	// document was created or updated, false on a backend-reported soft
	// failure. Success is defined by this indicator, not by a nil error.
	IndexDocument(ctx context.Context, doc *domain.Document) (bool, error)

	// DeleteDocument removes a document by ID. Returns false, not an
	// error, when the document does not exist.
	DeleteDocument(ctx context.Context, id string) (bool, error)

	// DocumentExists reports whether a document with the given ID is in
	// the index.
	DocumentExists(ctx context.Context, id string) (bool, error)

	// Search matches the query against name (boosted), content and path
	// using fuzzy best-field matching and returns at most size hits,
	// ranked descending by score. Malformed backend state yields an
	// empty list rather than an error.
	Search(ctx context.Context, query string, size int) ([]domain.SearchHit, error)

	// Refresh forces pending writes to become visible to subsequent
	// Search calls. Called once after a batch, not after every write.
	Refresh(ctx context.Context) error

	// Ping checks backend liveness.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
