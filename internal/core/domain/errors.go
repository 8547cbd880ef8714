package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuery indicates an empty or whitespace-only search query.
	// Rejected synchronously, before the backend is reached.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSourceUnavailable indicates listing or downloading from the
	// remote source failed. Per candidate it means skip and continue;
	// during listing it fails the whole batch.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrExtraction indicates decoding or text extraction failed.
	// Soft: the candidate proceeds with empty content.
	ErrExtraction = errors.New("text extraction failed")

	// ErrRecordBuild indicates required source metadata was missing or
	// unparseable. The candidate is skipped, not the batch.
	ErrRecordBuild = errors.New("record build failed")

	// ErrBackendWrite indicates the backend reported a non-success
	// outcome for an upsert. Not retried within the batch.
	ErrBackendWrite = errors.New("backend write failed")

	// ErrBackendUnavailable indicates a connectivity failure to the
	// search backend.
	ErrBackendUnavailable = errors.New("search backend unavailable")

	// ErrSyncInProgress indicates an ingestion batch is already running.
	ErrSyncInProgress = errors.New("sync in progress")
)
