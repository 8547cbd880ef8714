package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

// buildDocument assembles an index record from source metadata, the
// resolved folder path and the extracted text. Missing identity fields or
// unparseable timestamps make the record unusable and are reported as
// ErrRecordBuild. Empty content is fine; a scanned PDF still gets its
// metadata indexed.
func buildDocument(sf domain.SourceFile, path, content string) (*domain.Document, error) {
	if sf.ID == "" {
		return nil, fmt.Errorf("%w: missing file ID", domain.ErrRecordBuild)
	}
	if sf.Name == "" {
		return nil, fmt.Errorf("%w: missing file name for %s", domain.ErrRecordBuild, sf.ID)
	}
	if sf.WebViewLink == "" {
		return nil, fmt.Errorf("%w: missing web view link for %s", domain.ErrRecordBuild, sf.ID)
	}

	created, err := time.Parse(time.RFC3339, sf.CreatedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad created time for %s: %w", domain.ErrRecordBuild, sf.ID, err)
	}
	modified, err := time.Parse(time.RFC3339, sf.ModifiedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad modified time for %s: %w", domain.ErrRecordBuild, sf.ID, err)
	}

	return &domain.Document{
		ID:           sf.ID,
		Name:         sf.Name,
		FilePath:     path,
		WebViewLink:  sf.WebViewLink,
		Content:      content,
		CreatedTime:  created,
		ModifiedTime: modified,
		Size:         sf.Size,
		MIMEType:     sf.MIMEType,
	}, nil
}
