// Package memory is an in-memory search engine used as the contract
// test double. Scoring is a naive occurrence count with the same name
// boost the production binding applies; it is deterministic and good
// enough for exercising ranking order in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine stores documents in a map keyed by ID.
type Engine struct {
	mu        sync.RWMutex
	docs      map[string]domain.Document
	refreshes int
	closed    bool

	// Unavailable makes every call fail, for connectivity tests.
	Unavailable bool

	// WriteOutcome, when false, makes IndexDocument report a soft
	// failure without an error, mirroring a backend-declined upsert.
	WriteOutcome bool
}

// NewEngine creates an empty in-memory engine that accepts writes.
func NewEngine() *Engine {
	return &Engine{docs: make(map[string]domain.Document), WriteOutcome: true}
}

// IndexDocument stores the document; re-indexing an ID replaces it.
func (e *Engine) IndexDocument(_ context.Context, doc *domain.Document) (bool, error) {
	if e.Unavailable {
		return false, domain.ErrBackendUnavailable
	}
	if !e.WriteOutcome {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[doc.ID] = *doc
	return true, nil
}

// DeleteDocument removes a document, reporting false when absent.
func (e *Engine) DeleteDocument(_ context.Context, id string) (bool, error) {
	if e.Unavailable {
		return false, domain.ErrBackendUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.docs[id]; !ok {
		return false, nil
	}
	delete(e.docs, id)
	return true, nil
}

// DocumentExists reports presence by ID.
func (e *Engine) DocumentExists(_ context.Context, id string) (bool, error) {
	if e.Unavailable {
		return false, domain.ErrBackendUnavailable
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.docs[id]
	return ok, nil
}

// Search counts case-insensitive occurrences in name (doubled), content
// and path, returning the top size documents by descending score.
func (e *Engine) Search(_ context.Context, query string, size int) ([]domain.SearchHit, error) {
	if e.Unavailable {
		return nil, domain.ErrBackendUnavailable
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	needle := strings.ToLower(query)
	var hits []domain.SearchHit
	for _, doc := range e.docs {
		score := 2*float64(strings.Count(strings.ToLower(doc.Name), needle)) +
			float64(strings.Count(strings.ToLower(doc.Content), needle)) +
			float64(strings.Count(strings.ToLower(doc.FilePath), needle))
		if score == 0 {
			continue
		}
		hits = append(hits, domain.SearchHit{
			FilePath:    doc.FilePath,
			Name:        doc.Name,
			WebViewLink: doc.WebViewLink,
			Score:       score,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > size {
		hits = hits[:size]
	}
	return hits, nil
}

// Refresh records the visibility barrier call.
func (e *Engine) Refresh(_ context.Context) error {
	if e.Unavailable {
		return domain.ErrBackendUnavailable
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshes++
	return nil
}

// Ping reports availability.
func (e *Engine) Ping(_ context.Context) error {
	if e.Unavailable {
		return domain.ErrBackendUnavailable
	}
	return nil
}

// Close marks the engine closed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Refreshes returns how many times Refresh was called.
func (e *Engine) Refreshes() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.refreshes
}

// Document returns a stored document copy for assertions.
func (e *Engine) Document(id string) (domain.Document, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	doc, ok := e.docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}
