package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
	"github.com/custodia-labs/docfind/internal/core/ports/driving"
	"github.com/custodia-labs/docfind/internal/logger"
)

// maxPathDepth bounds the parent folder walk. A deeper chain (or a parent
// cycle) truncates the path at the depth reached so far.
const maxPathDepth = 10

// defaultWorkers is the per-batch concurrency when none is configured.
const defaultWorkers = 4

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Indexer runs ingestion batches: list candidates from the source, extract
// text, build records and write them to the search engine. One batch runs
// at a time.
type Indexer struct {
	source     driven.DocumentSource
	extractor  driven.Extractor
	engine     driven.SearchEngine
	history    driven.SyncHistoryStore
	folderName string
	workers    int

	mu      sync.Mutex
	current *domain.SyncBatch
}

// NewIndexer creates an indexer over the given folder. workers <= 0 falls
// back to a small default.
func NewIndexer(
	source driven.DocumentSource,
	extractor driven.Extractor,
	engine driven.SearchEngine,
	history driven.SyncHistoryStore,
	folderName string,
	workers int,
) *Indexer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Indexer{
		source:     source,
		extractor:  extractor,
		engine:     engine,
		history:    history,
		folderName: folderName,
		workers:    workers,
	}
}

// Trigger starts a batch in the background and returns its ID immediately.
// Returns ErrSyncInProgress when a batch is already running.
func (i *Indexer) Trigger(ctx context.Context) (string, error) {
	batch, err := i.begin()
	if err != nil {
		return "", err
	}

	// The batch outlives the triggering request.
	go i.runBatch(context.WithoutCancel(ctx), batch)

	return batch.ID, nil
}

// Run executes a batch synchronously and returns its final state.
// Returns ErrSyncInProgress when a batch is already running.
func (i *Indexer) Run(ctx context.Context) (*domain.SyncBatch, error) {
	batch, err := i.begin()
	if err != nil {
		return nil, err
	}

	i.runBatch(ctx, batch)
	return copyBatch(batch), nil
}

// Status reports the running batch if one is active, otherwise the most
// recent batch from history. With no history at all the indexer is idle.
func (i *Indexer) Status(ctx context.Context) (*domain.SyncBatch, error) {
	i.mu.Lock()
	if i.current != nil {
		batch := copyBatch(i.current)
		i.mu.Unlock()
		return batch, nil
	}
	i.mu.Unlock()

	batch, err := i.history.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.SyncBatch{State: domain.BatchIdle}, nil
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// begin claims the single batch slot and returns the new running batch.
func (i *Indexer) begin() (*domain.SyncBatch, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.current != nil {
		return nil, domain.ErrSyncInProgress
	}

	batch := &domain.SyncBatch{
		ID:        uuid.NewString(),
		State:     domain.BatchRunning,
		StartedAt: time.Now().UTC(),
	}
	i.current = batch
	return batch, nil
}

// runBatch drives a batch to a terminal state and releases the slot.
func (i *Indexer) runBatch(ctx context.Context, batch *domain.SyncBatch) {
	defer func() {
		i.mu.Lock()
		i.current = nil
		i.mu.Unlock()
	}()

	logger.Info("Starting index batch %s for folder %q", batch.ID, i.folderName)

	if err := i.engine.Ping(ctx); err != nil {
		logger.Error("Batch %s aborted, search backend unreachable: %v", batch.ID, err)
		i.finish(ctx, batch, domain.BatchFailed)
		return
	}

	candidates, err := i.source.ListCandidates(ctx, i.folderName)
	if err != nil {
		logger.Error("Batch %s aborted, listing candidates failed: %v", batch.ID, err)
		i.finish(ctx, batch, domain.BatchFailed)
		return
	}

	var (
		countMu   sync.Mutex
		attempted int
		succeeded int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for _, candidate := range candidates {
		g.Go(func() error {
			ok := i.processCandidate(gctx, candidate)

			countMu.Lock()
			attempted++
			if ok {
				succeeded++
			}
			countMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	i.mu.Lock()
	batch.Attempted = attempted
	batch.Succeeded = succeeded
	i.mu.Unlock()

	if err := i.engine.Refresh(ctx); err != nil {
		logger.Warn("Batch %s: refresh failed: %v", batch.ID, err)
	}

	i.finish(ctx, batch, domain.BatchCompleted)
	logger.Info("Batch %s finished: %d attempted, %d indexed", batch.ID, attempted, succeeded)
}

// finish records the terminal state and persists the batch.
func (i *Indexer) finish(ctx context.Context, batch *domain.SyncBatch, state domain.BatchState) {
	i.mu.Lock()
	batch.State = state
	batch.FinishedAt = time.Now().UTC()
	record := copyBatch(batch)
	i.mu.Unlock()

	if err := i.history.Save(ctx, record); err != nil {
		logger.Error("Batch %s: saving history failed: %v", batch.ID, err)
	}
}

// processCandidate ingests a single file. Failures are logged and skipped
// so one bad file never sinks the batch.
func (i *Indexer) processCandidate(ctx context.Context, sf domain.SourceFile) bool {
	data, err := i.source.DownloadBytes(ctx, sf.ID)
	if err != nil {
		logger.Warn("Skipping %s (%s): download failed: %v", sf.Name, sf.ID, err)
		return false
	}

	content, err := i.extractor.FullText(data)
	if err != nil {
		// Metadata is still worth indexing for unreadable PDFs.
		logger.Warn("Extraction failed for %s (%s), indexing metadata only: %v", sf.Name, sf.ID, err)
		content = ""
	}

	path := i.resolvePath(ctx, sf)

	doc, err := buildDocument(sf, path, content)
	if err != nil {
		logger.Warn("Skipping %s: %v", sf.ID, err)
		return false
	}

	ok, err := i.engine.IndexDocument(ctx, doc)
	if err != nil {
		logger.Warn("Indexing %s (%s) failed: %v", sf.Name, sf.ID, err)
		return false
	}
	if !ok {
		// The backend can decline a write without raising an error.
		logger.Warn("Backend did not acknowledge write for %s (%s)", sf.Name, sf.ID)
		return false
	}

	return true
}

// resolvePath walks the parent chain to build a folder path for the file,
// innermost folder first. The walk is bounded by maxPathDepth and stops on
// repeated parents, truncating the path at whatever was resolved so far.
func (i *Indexer) resolvePath(ctx context.Context, sf domain.SourceFile) string {
	if len(sf.Parents) == 0 {
		return "/" + sf.Name
	}

	var parts []string
	seen := make(map[string]bool)
	parentID := sf.Parents[0]

	for depth := 0; depth < maxPathDepth && parentID != ""; depth++ {
		if seen[parentID] {
			logger.Warn("Parent cycle at %s while resolving path for %s", parentID, sf.ID)
			break
		}
		seen[parentID] = true

		name, parents, err := i.source.ResolveParent(ctx, parentID)
		if err != nil {
			logger.Warn("Resolving parent %s for %s failed: %v", parentID, sf.ID, err)
			break
		}

		parts = append([]string{name}, parts...)
		if len(parents) == 0 {
			break
		}
		parentID = parents[0]
	}

	if len(parts) == 0 {
		return "/" + sf.Name
	}
	return "/" + strings.Join(parts, "/") + "/" + sf.Name
}

func copyBatch(b *domain.SyncBatch) *domain.SyncBatch {
	c := *b
	return &c
}
