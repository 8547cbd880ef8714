package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

func TestOccurrences(t *testing.T) {
	source := &mockSource{data: map[string][]byte{"f1": []byte("ignored")}}
	extractor := &mockExtractor{pages: []domain.Page{
		{Number: 1, Text: "nothing here"},
		{Number: 2, Text: "the annual budget and the budget review"},
	}}
	insp := NewInspector(source, extractor)

	matches, err := insp.Occurrences(context.Background(), "f1", "budget")
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].PageNumber)
	assert.Equal(t, 2, matches[0].Occurrences)
}

func TestOccurrences_BlankTerm(t *testing.T) {
	insp := NewInspector(&mockSource{}, &mockExtractor{})

	_, err := insp.Occurrences(context.Background(), "f1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestOccurrences_UnknownFile(t *testing.T) {
	insp := NewInspector(&mockSource{}, &mockExtractor{})

	_, err := insp.Occurrences(context.Background(), "missing", "budget")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOccurrences_ExtractionError(t *testing.T) {
	source := &mockSource{data: map[string][]byte{"f1": []byte("bytes")}}
	insp := NewInspector(source, &mockExtractor{err: domain.ErrExtraction})

	_, err := insp.Occurrences(context.Background(), "f1", "budget")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestOccurrences_NoMatches(t *testing.T) {
	source := &mockSource{data: map[string][]byte{"f1": []byte("plain text")}}
	insp := NewInspector(source, &mockExtractor{})

	matches, err := insp.Occurrences(context.Background(), "f1", "absent")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
