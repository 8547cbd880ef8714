// Package bleve implements the search backend contract on top of a
// bleve full-text index. The index schema mirrors the document record:
// exact-match keys for id, file_path, web_view_link and mime_type,
// analyzed text for name and content, datetime and numeric fields for
// the timestamps and size.
package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
	"github.com/custodia-labs/docfind/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine wraps a bleve index behind the SearchEngine contract.
// The handle is safe for concurrent use by queries and ingestion.
type Engine struct {
	mu     sync.RWMutex
	index  bleve.Index
	closed bool
}

// indexDoc is the wire shape stored in the index. Field names follow the
// schema keys; bleve maps them through the json struct tags.
type indexDoc struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	FilePath     string    `json:"file_path"`
	WebViewLink  string    `json:"web_view_link"`
	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`
	Size         int64     `json:"size"`
	MIMEType     string    `json:"mime_type"`
}

// Open opens the index at path, creating it when absent; opening an
// existing index is a no-op with respect to its mapping, so creation is
// idempotent. An empty path yields an in-memory index.
func Open(path string) (*Engine, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(buildMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &Engine{index: idx}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	return &Engine{index: idx}, nil
}

// buildMapping constructs the document schema.
func buildMapping() *mapping.IndexMappingImpl {
	keyword := bleve.NewKeywordFieldMapping()
	text := bleve.NewTextFieldMapping()
	date := bleve.NewDateTimeFieldMapping()
	numeric := bleve.NewNumericFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", keyword)
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("content", text)
	doc.AddFieldMappingsAt("file_path", keyword)
	doc.AddFieldMappingsAt("web_view_link", keyword)
	doc.AddFieldMappingsAt("mime_type", keyword)
	doc.AddFieldMappingsAt("created_time", date)
	doc.AddFieldMappingsAt("modified_time", date)
	doc.AddFieldMappingsAt("size", numeric)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// IndexDocument upserts the document under its ID. Indexing an existing
// ID replaces the stored document, so the second write wins.
func (e *Engine) IndexDocument(_ context.Context, doc *domain.Document) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false, fmt.Errorf("index document: %w", domain.ErrBackendUnavailable)
	}

	stored := indexDoc{
		ID:           doc.ID,
		Name:         doc.Name,
		Content:      doc.Content,
		FilePath:     doc.FilePath,
		WebViewLink:  doc.WebViewLink,
		CreatedTime:  doc.CreatedTime,
		ModifiedTime: doc.ModifiedTime,
		Size:         doc.Size,
		MIMEType:     doc.MIMEType,
	}

	if err := e.index.Index(doc.ID, stored); err != nil {
		return false, fmt.Errorf("index document %s: %w: %w", doc.ID, domain.ErrBackendWrite, err)
	}
	return true, nil
}

// DeleteDocument removes a document. A missing ID returns false, nil.
func (e *Engine) DeleteDocument(_ context.Context, id string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false, fmt.Errorf("delete document: %w", domain.ErrBackendUnavailable)
	}

	existing, err := e.index.Document(id)
	if err != nil {
		return false, fmt.Errorf("lookup document %s: %w", id, err)
	}
	if existing == nil {
		return false, nil
	}

	if err := e.index.Delete(id); err != nil {
		return false, fmt.Errorf("delete document %s: %w", id, err)
	}
	return true, nil
}

// DocumentExists reports whether the ID is present in the index.
func (e *Engine) DocumentExists(_ context.Context, id string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false, fmt.Errorf("document exists: %w", domain.ErrBackendUnavailable)
	}

	doc, err := e.index.Document(id)
	if err != nil {
		return false, fmt.Errorf("lookup document %s: %w", id, err)
	}
	return doc != nil, nil
}

// Search runs a best-fields style disjunction over name (boost 2),
// content and file_path with automatic fuzziness, requesting highlights
// on content and name. Query execution failures are logged and yield an
// empty list instead of propagating.
func (e *Engine) Search(ctx context.Context, query string, size int) ([]domain.SearchHit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, fmt.Errorf("search: %w", domain.ErrBackendUnavailable)
	}

	nameQ := bleve.NewMatchQuery(query)
	nameQ.SetField("name")
	nameQ.SetBoost(2)
	nameQ.SetAutoFuzziness(true)

	contentQ := bleve.NewMatchQuery(query)
	contentQ.SetField("content")
	contentQ.SetAutoFuzziness(true)

	pathQ := bleve.NewMatchQuery(query)
	pathQ.SetField("file_path")
	pathQ.SetAutoFuzziness(true)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(nameQ, contentQ, pathQ))
	req.Size = size
	req.Fields = []string{"name", "file_path", "web_view_link"}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField("content")
	req.Highlight.AddField("name")

	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		logger.Warn("Search %q failed: %v", query, err)
		return []domain.SearchHit{}, nil
	}

	hits := make([]domain.SearchHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		h := domain.SearchHit{Score: hit.Score}
		if v, ok := hit.Fields["name"].(string); ok {
			h.Name = v
		}
		if v, ok := hit.Fields["file_path"].(string); ok {
			h.FilePath = v
		}
		if v, ok := hit.Fields["web_view_link"].(string); ok {
			h.WebViewLink = v
		}
		if len(hit.Fragments) > 0 {
			h.Highlights = hit.Fragments
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// Refresh is the explicit visibility barrier after a batch. Bleve writes
// are searchable once Index returns, so there is nothing to flush here;
// the call still marks the point where the batch becomes observable.
func (e *Engine) Refresh(_ context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return fmt.Errorf("refresh: %w", domain.ErrBackendUnavailable)
	}
	return nil
}

// Ping checks that the index responds.
func (e *Engine) Ping(_ context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return domain.ErrBackendUnavailable
	}
	if _, err := e.index.DocCount(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Close closes the underlying index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.index.Close()
}
