package driven

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// SyncHistoryStore persists ingestion batch records for observability.
type SyncHistoryStore interface {
	// Save stores or updates a batch record keyed by its ID.
	Save(ctx context.Context, batch *domain.SyncBatch) error

	// Latest returns the most recently started batch, or
	// domain.ErrNotFound when no batch has ever run.
	Latest(ctx context.Context) (*domain.SyncBatch, error)

	// Close releases resources.
	Close() error
}
