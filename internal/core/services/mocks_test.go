package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// mockSource is a configurable DocumentSource for tests.
type mockSource struct {
	files       []domain.SourceFile
	listErr     error
	data        map[string][]byte
	downloadErr map[string]error
	folders     map[string]mockFolder
	resolveErr  map[string]error
}

type mockFolder struct {
	name    string
	parents []string
}

func (m *mockSource) ListCandidates(_ context.Context, _ string) ([]domain.SourceFile, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.files, nil
}

func (m *mockSource) DownloadBytes(_ context.Context, id string) ([]byte, error) {
	if err := m.downloadErr[id]; err != nil {
		return nil, err
	}
	if data, ok := m.data[id]; ok {
		return data, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSource) ResolveParent(_ context.Context, id string) (string, []string, error) {
	if err := m.resolveErr[id]; err != nil {
		return "", nil, err
	}
	f, ok := m.folders[id]
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	return f.name, f.parents, nil
}

// mockExtractor returns the downloaded bytes as text, or a fixed page set.
type mockExtractor struct {
	err   error
	pages []domain.Page
}

func (m *mockExtractor) FullText(data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return string(data), nil
}

func (m *mockExtractor) Pages(data []byte) ([]domain.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.pages != nil {
		return m.pages, nil
	}
	return []domain.Page{{Number: 1, Text: string(data)}}, nil
}

// mockEngine records writes and knows how to fail on demand.
type mockEngine struct {
	mu        sync.Mutex
	docs      map[string]*domain.Document
	refreshes int

	pingErr       error
	indexErr      error
	declineWrites bool
	searchErr     error
	hits          []domain.SearchHit
	lastQuery     string
	lastSize      int
}

func newMockEngine() *mockEngine {
	return &mockEngine{docs: make(map[string]*domain.Document)}
}

func (m *mockEngine) IndexDocument(_ context.Context, doc *domain.Document) (bool, error) {
	if m.indexErr != nil {
		return false, m.indexErr
	}
	if m.declineWrites {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return true, nil
}

func (m *mockEngine) DeleteDocument(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return false, nil
	}
	delete(m.docs, id)
	return true, nil
}

func (m *mockEngine) DocumentExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[id]
	return ok, nil
}

func (m *mockEngine) Search(_ context.Context, query string, size int) ([]domain.SearchHit, error) {
	m.lastQuery = query
	m.lastSize = size
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockEngine) Refresh(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return nil
}

func (m *mockEngine) Ping(_ context.Context) error { return m.pingErr }

func (m *mockEngine) Close() error { return nil }

func (m *mockEngine) document(id string) *domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id]
}

func (m *mockEngine) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func (m *mockEngine) refreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

// mockHistory keeps batches in memory.
type mockHistory struct {
	mu      sync.Mutex
	saved   []*domain.SyncBatch
	saveErr error
}

func (m *mockHistory) Save(_ context.Context, batch *domain.SyncBatch) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *batch
	m.saved = append(m.saved, &c)
	return nil
}

func (m *mockHistory) Latest(_ context.Context) (*domain.SyncBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil, domain.ErrNotFound
	}
	c := *m.saved[len(m.saved)-1]
	return &c, nil
}

func (m *mockHistory) Close() error { return nil }

func (m *mockHistory) last() *domain.SyncBatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

// sourceFile builds a well-formed candidate for tests.
func sourceFile(id, name string, parents ...string) domain.SourceFile {
	return domain.SourceFile{
		ID:           id,
		Name:         name,
		WebViewLink:  "https://drive.google.com/file/d/" + id + "/view",
		CreatedTime:  "2024-03-01T10:00:00Z",
		ModifiedTime: "2024-03-02T11:30:00Z",
		Size:         int64(len(name)),
		MIMEType:     "application/pdf",
		Parents:      parents,
	}
}
