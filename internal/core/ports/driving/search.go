package driving

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// Searcher exposes the ranked query surface.
type Searcher interface {
	// Search returns at most size hits for a free-text query. An empty
	// or whitespace-only query is rejected with domain.ErrInvalidQuery
	// before the backend is reached.
	Search(ctx context.Context, query string, size int) ([]domain.SearchHit, error)

	// Health checks the backend connection.
	Health(ctx context.Context) error
}
