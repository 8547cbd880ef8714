package driven

import (
	"context"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// DocumentSource lists and fetches candidate files from the remote
// file-storage source. All calls are blocking network operations; callers
// impose their own deadlines via ctx.
type DocumentSource interface {
	// ListCandidates returns the indexable files, optionally limited to
	// the named folder. An unknown folder name yields an empty list,
	// not an error.
	ListCandidates(ctx context.Context, folderName string) ([]domain.SourceFile, error)

	// DownloadBytes fetches the raw content of a file.
	DownloadBytes(ctx context.Context, id string) ([]byte, error)

	// ResolveParent returns the name and parent IDs of a folder, used to
	// reconstruct hierarchical paths. The walk over parents is bounded
	// by the caller; the source graph is untrusted and may be cyclic.
	ResolveParent(ctx context.Context, id string) (name string, parents []string, err error)
}
