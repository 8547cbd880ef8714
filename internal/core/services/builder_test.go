package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

func TestBuildDocument(t *testing.T) {
	sf := sourceFile("f1", "report.pdf", "folder1")

	doc, err := buildDocument(sf, "/reports/report.pdf", "annual figures")
	require.NoError(t, err)

	assert.Equal(t, "f1", doc.ID)
	assert.Equal(t, "report.pdf", doc.Name)
	assert.Equal(t, "/reports/report.pdf", doc.FilePath)
	assert.Equal(t, sf.WebViewLink, doc.WebViewLink)
	assert.Equal(t, "annual figures", doc.Content)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), doc.CreatedTime)
	assert.Equal(t, time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC), doc.ModifiedTime)
	assert.Equal(t, "application/pdf", doc.MIMEType)
}

func TestBuildDocument_EmptyContentAllowed(t *testing.T) {
	doc, err := buildDocument(sourceFile("f1", "scan.pdf"), "/scan.pdf", "")
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestBuildDocument_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SourceFile)
	}{
		{name: "missing ID", mutate: func(sf *domain.SourceFile) { sf.ID = "" }},
		{name: "missing name", mutate: func(sf *domain.SourceFile) { sf.Name = "" }},
		{name: "missing link", mutate: func(sf *domain.SourceFile) { sf.WebViewLink = "" }},
		{name: "bad created time", mutate: func(sf *domain.SourceFile) { sf.CreatedTime = "yesterday" }},
		{name: "bad modified time", mutate: func(sf *domain.SourceFile) { sf.ModifiedTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf := sourceFile("f1", "report.pdf")
			tt.mutate(&sf)

			_, err := buildDocument(sf, "/report.pdf", "text")
			assert.ErrorIs(t, err, domain.ErrRecordBuild)
		})
	}
}

func TestBuildDocument_DriveTimestampFormat(t *testing.T) {
	// Drive reports millisecond precision with a Z suffix.
	sf := sourceFile("f1", "report.pdf")
	sf.CreatedTime = "2024-03-01T10:00:00.000Z"
	sf.ModifiedTime = "2024-03-02T11:30:45.500Z"

	doc, err := buildDocument(sf, "/report.pdf", "text")
	require.NoError(t, err)
	assert.Equal(t, 500*int(time.Millisecond), doc.ModifiedTime.Nanosecond())
}
