package driving

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// Indexer coordinates ingestion batches from the remote source into the
// search backend.
type Indexer interface {
	// Trigger submits a batch and returns its ID immediately; the batch
	// proceeds independently of the caller. Returns
	// domain.ErrSyncInProgress while another batch is running.
	Trigger(ctx context.Context) (string, error)

	// Run executes a batch synchronously and returns its final record.
	Run(ctx context.Context) (*domain.SyncBatch, error)

	// Status returns the running batch, or the most recent one when
	// idle. When nothing has ever run the batch is in the idle state.
	Status(ctx context.Context) (*domain.SyncBatch, error)
}
