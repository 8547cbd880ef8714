package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
	"github.com/custodia-labs/docfind/internal/core/ports/driving"
)

// Result size bounds applied to every query.
const (
	DefaultSearchSize = 10
	MaxSearchSize     = 100
)

// Ensure Searcher implements the interface.
var _ driving.Searcher = (*Searcher)(nil)

// Searcher validates queries and runs them against the search engine.
type Searcher struct {
	engine      driven.SearchEngine
	defaultSize int
	maxSize     int
}

// NewSearcher creates a search service over the given engine. Non-positive
// size bounds fall back to the package defaults.
func NewSearcher(engine driven.SearchEngine, defaultSize, maxSize int) *Searcher {
	if defaultSize <= 0 {
		defaultSize = DefaultSearchSize
	}
	if maxSize <= 0 {
		maxSize = MaxSearchSize
	}
	return &Searcher{engine: engine, defaultSize: defaultSize, maxSize: maxSize}
}

// Search returns ranked hits for the query. A blank query is rejected with
// ErrInvalidQuery. size is clamped to the configured bounds; zero or
// negative means the default.
func (s *Searcher) Search(ctx context.Context, query string, size int) ([]domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}

	if size <= 0 {
		size = s.defaultSize
	}
	if size > s.maxSize {
		size = s.maxSize
	}

	hits, err := s.engine.Search(ctx, query, size)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return hits, nil
}

// Health reports whether the search backend is reachable.
func (s *Searcher) Health(ctx context.Context) error {
	return s.engine.Ping(ctx)
}
