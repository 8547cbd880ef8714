package domain

import "time"

// BatchState is the lifecycle state of an ingestion batch.
type BatchState string

const (
	// BatchIdle means no batch has run yet.
	BatchIdle BatchState = "idle"

	// BatchRunning means a batch is currently in flight.
	BatchRunning BatchState = "running"

	// BatchCompleted means the batch finished. Individual item failures
	// do not prevent this state.
	BatchCompleted BatchState = "completed"

	// BatchFailed means the candidate-listing step or the backend
	// connection failed before any item could be processed.
	BatchFailed BatchState = "failed"
)

// SyncBatch records one ingestion batch for observability.
type SyncBatch struct {
	// ID is the unique batch identifier.
	ID string

	// State is the current lifecycle state.
	State BatchState

	// Attempted is the number of candidates processed.
	Attempted int

	// Succeeded is the number of candidates indexed successfully.
	Succeeded int

	// StartedAt is when the batch began.
	StartedAt time.Time

	// FinishedAt is when the batch reached a terminal state.
	// Zero while the batch is running.
	FinishedAt time.Time
}
