// Package drive implements the DocumentSource port against the Google
// Drive v3 API. It lists PDF files under a named folder, downloads raw
// file bytes, and resolves parent folders for path construction.
package drive

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/docfind/internal/core/domain"
	"github.com/custodia-labs/docfind/internal/core/ports/driven"
)

// Drive MIME types relevant to ingestion.
const (
	mimeTypeFolder = "application/vnd.google-apps.folder"
	mimeTypePDF    = "application/pdf"
)

// candidateFields is the metadata requested for each listed file.
const candidateFields = "nextPageToken, files(id, name, webViewLink, createdTime, modifiedTime, size, mimeType, parents)"

// Conservative rate limit, below Google's 10 requests/sec/user quota.
const (
	requestsPerSecond = 8.0
	burstSize         = 10
)

// Source lists and downloads PDF files from Google Drive.
type Source struct {
	svc     *gdrive.Service
	limiter *rate.Limiter
}

var _ driven.DocumentSource = (*Source)(nil)

// New creates a Drive source authenticated by the given token source.
func New(ctx context.Context, ts oauth2.TokenSource) (*Source, error) {
	svc, err := gdrive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Source{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// ListCandidates returns the PDF files directly under the folder with the
// given name. A missing folder is not an error; it yields an empty list.
// An empty folderName lists every non-trashed PDF instead.
func (s *Source) ListCandidates(ctx context.Context, folderName string) ([]domain.SourceFile, error) {
	folderID := ""
	if folderName != "" {
		id, err := s.findFolder(ctx, folderName)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		folderID = id
	}

	query := candidateQuery(folderID)

	var files []domain.SourceFile
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(query).
			Fields(candidateFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list files: %w", wrapError(err))
		}

		for _, f := range resp.Files {
			files = append(files, toSourceFile(f))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return files, nil
}

// DownloadBytes fetches the raw content of a file by ID.
func (s *Source) DownloadBytes(ctx context.Context, id string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", id, wrapError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", id, wrapError(err))
	}

	return data, nil
}

// ResolveParent returns the name and parent IDs of a folder by ID.
func (s *Source) ResolveParent(ctx context.Context, id string) (string, []string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", nil, err
	}

	f, err := s.svc.Files.Get(id).Fields("name, parents").Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("get folder %s: %w", id, wrapError(err))
	}

	return f.Name, f.Parents, nil
}

// candidateQuery builds the files.list query. An empty folderID drops the
// parent filter and matches every non-trashed PDF.
func candidateQuery(folderID string) string {
	if folderID == "" {
		return fmt.Sprintf("mimeType='%s' and trashed=false", mimeTypePDF)
	}
	return fmt.Sprintf("mimeType='%s' and '%s' in parents and trashed=false", mimeTypePDF, folderID)
}

// findFolder resolves a folder name to its ID. Returns "" when no folder
// with that name exists.
func (s *Source) findFolder(ctx context.Context, name string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	query := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", mimeTypeFolder, name)
	resp, err := s.svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("find folder %q: %w", name, wrapError(err))
	}

	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

// toSourceFile maps a Drive file to the domain representation.
func toSourceFile(f *gdrive.File) domain.SourceFile {
	return domain.SourceFile{
		ID:           f.Id,
		Name:         f.Name,
		WebViewLink:  f.WebViewLink,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		Size:         f.Size,
		MIMEType:     f.MimeType,
		Parents:      f.Parents,
	}
}
