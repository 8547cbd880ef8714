package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

func newTestIndexer(source *mockSource, engine *mockEngine, history *mockHistory) *Indexer {
	return NewIndexer(source, &mockExtractor{}, engine, history, "Reports", 2)
}

func TestRun_IndexesAllCandidates(t *testing.T) {
	source := &mockSource{
		files: []domain.SourceFile{
			sourceFile("f1", "alpha.pdf"),
			sourceFile("f2", "beta.pdf"),
		},
		data: map[string][]byte{
			"f1": []byte("alpha body"),
			"f2": []byte("beta body"),
		},
	}
	engine := newMockEngine()
	history := &mockHistory{}

	batch, err := newTestIndexer(source, engine, history).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BatchCompleted, batch.State)
	assert.Equal(t, 2, batch.Attempted)
	assert.Equal(t, 2, batch.Succeeded)
	assert.False(t, batch.FinishedAt.IsZero())

	assert.Equal(t, 2, engine.len())
	assert.Equal(t, "alpha body", engine.document("f1").Content)
	assert.Equal(t, "/alpha.pdf", engine.document("f1").FilePath)

	// Visibility barrier runs once per batch, after all writes.
	assert.Equal(t, 1, engine.refreshCount())

	saved := history.last()
	require.NotNil(t, saved)
	assert.Equal(t, batch.ID, saved.ID)
	assert.Equal(t, domain.BatchCompleted, saved.State)
}

func TestRun_OneBadFileDoesNotSinkTheBatch(t *testing.T) {
	source := &mockSource{
		files: []domain.SourceFile{
			sourceFile("f1", "good.pdf"),
			sourceFile("f2", "broken.pdf"),
			sourceFile("f3", "fine.pdf"),
		},
		data: map[string][]byte{
			"f1": []byte("one"),
			"f3": []byte("three"),
		},
		downloadErr: map[string]error{"f2": domain.ErrSourceUnavailable},
	}
	engine := newMockEngine()
	history := &mockHistory{}

	batch, err := newTestIndexer(source, engine, history).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BatchCompleted, batch.State)
	assert.Equal(t, 3, batch.Attempted)
	assert.Equal(t, 2, batch.Succeeded)
	assert.Equal(t, 2, engine.len())
}

func TestRun_ExtractionFailureIndexesMetadataOnly(t *testing.T) {
	source := &mockSource{
		files: []domain.SourceFile{sourceFile("f1", "scan.pdf")},
		data:  map[string][]byte{"f1": []byte("raw")},
	}
	engine := newMockEngine()
	history := &mockHistory{}
	idx := NewIndexer(source, &mockExtractor{err: domain.ErrExtraction}, engine, history, "Reports", 1)

	batch, err := idx.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, batch.Succeeded)
	doc := engine.document("f1")
	require.NotNil(t, doc)
	assert.Empty(t, doc.Content)
	assert.Equal(t, "scan.pdf", doc.Name)
}

func TestRun_DeclinedWriteNotCountedAsSucceeded(t *testing.T) {
	source := &mockSource{
		files: []domain.SourceFile{
			sourceFile("f1", "alpha.pdf"),
			sourceFile("f2", "beta.pdf"),
		},
		data: map[string][]byte{
			"f1": []byte("one"),
			"f2": []byte("two"),
		},
	}
	engine := newMockEngine()
	engine.declineWrites = true
	history := &mockHistory{}

	batch, err := newTestIndexer(source, engine, history).Run(context.Background())
	require.NoError(t, err)

	// A false outcome with a nil error is still a failed write.
	assert.Equal(t, domain.BatchCompleted, batch.State)
	assert.Equal(t, 2, batch.Attempted)
	assert.Zero(t, batch.Succeeded)
	assert.Equal(t, 0, engine.len())
}

func TestRun_BackendDownFailsBatch(t *testing.T) {
	source := &mockSource{files: []domain.SourceFile{sourceFile("f1", "a.pdf")}}
	engine := newMockEngine()
	engine.pingErr = domain.ErrBackendUnavailable
	history := &mockHistory{}

	batch, err := newTestIndexer(source, engine, history).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BatchFailed, batch.State)
	assert.Zero(t, batch.Attempted)
	assert.Equal(t, 0, engine.len())
	require.NotNil(t, history.last())
	assert.Equal(t, domain.BatchFailed, history.last().State)
}

func TestRun_ListFailureFailsBatch(t *testing.T) {
	source := &mockSource{listErr: domain.ErrSourceUnavailable}
	engine := newMockEngine()
	history := &mockHistory{}

	batch, err := newTestIndexer(source, engine, history).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BatchFailed, batch.State)
}

func TestRun_EmptyFolderCompletesWithZeroCounts(t *testing.T) {
	engine := newMockEngine()
	history := &mockHistory{}

	batch, err := newTestIndexer(&mockSource{}, engine, history).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BatchCompleted, batch.State)
	assert.Zero(t, batch.Attempted)
	assert.Zero(t, batch.Succeeded)
}

func TestTrigger_ReturnsBatchIDAndRunsInBackground(t *testing.T) {
	source := &mockSource{
		files: []domain.SourceFile{sourceFile("f1", "a.pdf")},
		data:  map[string][]byte{"f1": []byte("body")},
	}
	engine := newMockEngine()
	history := &mockHistory{}
	idx := newTestIndexer(source, engine, history)

	id, err := idx.Trigger(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Eventually(t, func() bool {
		saved := history.last()
		return saved != nil && saved.State == domain.BatchCompleted
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, id, history.last().ID)
	assert.Equal(t, 1, engine.len())
}

func TestTrigger_RejectsConcurrentBatch(t *testing.T) {
	engine := newMockEngine()
	idx := newTestIndexer(&mockSource{}, engine, &mockHistory{})

	// Claim the slot directly so the second trigger finds it occupied.
	_, err := idx.begin()
	require.NoError(t, err)

	_, err = idx.Trigger(context.Background())
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	_, err = idx.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
}

func TestStatus(t *testing.T) {
	t.Run("idle with no history", func(t *testing.T) {
		idx := newTestIndexer(&mockSource{}, newMockEngine(), &mockHistory{})

		batch, err := idx.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.BatchIdle, batch.State)
	})

	t.Run("running batch wins over history", func(t *testing.T) {
		history := &mockHistory{saved: []*domain.SyncBatch{{ID: "old", State: domain.BatchCompleted}}}
		idx := newTestIndexer(&mockSource{}, newMockEngine(), history)

		running, err := idx.begin()
		require.NoError(t, err)

		batch, err := idx.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, running.ID, batch.ID)
		assert.Equal(t, domain.BatchRunning, batch.State)
	})

	t.Run("falls back to latest history", func(t *testing.T) {
		history := &mockHistory{saved: []*domain.SyncBatch{{ID: "done", State: domain.BatchCompleted, Succeeded: 7}}}
		idx := newTestIndexer(&mockSource{}, newMockEngine(), history)

		batch, err := idx.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "done", batch.ID)
		assert.Equal(t, 7, batch.Succeeded)
	})
}

func TestResolvePath(t *testing.T) {
	folders := map[string]mockFolder{
		"inner": {name: "2024", parents: []string{"outer"}},
		"outer": {name: "Reports", parents: nil},
	}

	t.Run("no parents", func(t *testing.T) {
		idx := newTestIndexer(&mockSource{}, newMockEngine(), &mockHistory{})
		assert.Equal(t, "/loose.pdf", idx.resolvePath(context.Background(), sourceFile("f1", "loose.pdf")))
	})

	t.Run("nested folders, innermost first walk", func(t *testing.T) {
		idx := newTestIndexer(&mockSource{folders: folders}, newMockEngine(), &mockHistory{})
		got := idx.resolvePath(context.Background(), sourceFile("f1", "q1.pdf", "inner"))
		assert.Equal(t, "/Reports/2024/q1.pdf", got)
	})

	t.Run("parent cycle truncates", func(t *testing.T) {
		cyclic := map[string]mockFolder{
			"a": {name: "A", parents: []string{"b"}},
			"b": {name: "B", parents: []string{"a"}},
		}
		idx := newTestIndexer(&mockSource{folders: cyclic}, newMockEngine(), &mockHistory{})
		got := idx.resolvePath(context.Background(), sourceFile("f1", "loop.pdf", "a"))
		assert.Equal(t, "/B/A/loop.pdf", got)
	})

	t.Run("resolve failure keeps partial path", func(t *testing.T) {
		src := &mockSource{
			folders:    map[string]mockFolder{"inner": {name: "2024", parents: []string{"gone"}}},
			resolveErr: map[string]error{"gone": errors.New("boom")},
		}
		idx := newTestIndexer(src, newMockEngine(), &mockHistory{})
		got := idx.resolvePath(context.Background(), sourceFile("f1", "q1.pdf", "inner"))
		assert.Equal(t, "/2024/q1.pdf", got)
	})

	t.Run("depth bounded", func(t *testing.T) {
		deep := make(map[string]mockFolder)
		for i := 0; i < 20; i++ {
			id := string(rune('a' + i))
			parent := string(rune('a' + i + 1))
			deep[id] = mockFolder{name: id, parents: []string{parent}}
		}
		idx := newTestIndexer(&mockSource{folders: deep}, newMockEngine(), &mockHistory{})
		got := idx.resolvePath(context.Background(), sourceFile("f1", "deep.pdf", "a"))
		// Ten levels resolved: j..a innermost-last, then the file name.
		assert.Equal(t, "/j/i/h/g/f/e/d/c/b/a/deep.pdf", got)
	})
}
