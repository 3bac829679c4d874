package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "pagesplit-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRun(id string, started time.Time) domain.RunRecord {
	return domain.RunRecord{
		ID:           id,
		Source:       "/in/batch.pdf",
		Destination:  "/out",
		Prefix:       "ExamTimetable",
		Suffix:       "pdf",
		WrittenCount: 2,
		FailedCount:  1,
		Outputs: []domain.PageOutcome{
			{Index: 0, Filename: "ExamTimetable_123456.pdf", Resolved: true, Identifier: "123456"},
			{Index: 1, Filename: "AAA_FAILED_TO_READ_1.pdf"},
		},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "history.db", filepath.Base(store.Path()))
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.RunStore().Save(ctx, testRun("run-1", time.Now())))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	run, err := store.RunStore().Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	runs := store.RunStore()
	ctx := context.Background()

	started := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, runs.Save(ctx, testRun("run-1", started)))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "/in/batch.pdf", got.Source)
	assert.Equal(t, "/out", got.Destination)
	assert.Equal(t, "ExamTimetable", got.Prefix)
	assert.Equal(t, 2, got.WrittenCount)
	assert.Equal(t, 1, got.FailedCount)
	assert.True(t, got.Succeeded())
	assert.True(t, got.StartedAt.Equal(started))
	assert.Equal(t, 3*time.Second, got.Duration())

	require.Len(t, got.Outputs, 2)
	assert.Equal(t, domain.PageOutcome{Index: 0, Filename: "ExamTimetable_123456.pdf", Resolved: true, Identifier: "123456"}, got.Outputs[0])
	assert.False(t, got.Outputs[1].Resolved)
	assert.Empty(t, got.Outputs[1].Identifier)
}

func TestRunStore_Save_Replaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	runs := store.RunStore()
	ctx := context.Background()

	run := testRun("run-1", time.Now())
	require.NoError(t, runs.Save(ctx, run))

	run.Error = "i/o error: disk full"
	run.Outputs = run.Outputs[:1]
	require.NoError(t, runs.Save(ctx, run))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.False(t, got.Succeeded())
	assert.Equal(t, "i/o error: disk full", got.Error)
	assert.Len(t, got.Outputs, 1)
}

func TestRunStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.RunStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	runs := store.RunStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, runs.Save(ctx, testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := runs.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "run-4", all[0].ID)
	assert.Equal(t, "run-0", all[4].ID)
	assert.Empty(t, all[0].Outputs, "list does not load pages")

	limited, err := runs.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRunStore_List_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	runs, err := store.RunStore().List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunStore_Delete_CascadesPages(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	runs := store.RunStore()
	ctx := context.Background()

	require.NoError(t, runs.Save(ctx, testRun("run-1", time.Now())))
	require.NoError(t, runs.Delete(ctx, "run-1"))

	_, err := runs.Get(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM run_pages").Scan(&count))
	assert.Zero(t, count)
}

func TestRunStore_UnfinishedRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	runs := store.RunStore()
	ctx := context.Background()

	run := testRun("run-1", time.Now())
	run.FinishedAt = time.Time{}
	run.Outputs = nil
	require.NoError(t, runs.Save(ctx, run))

	got, err := runs.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, got.FinishedAt.IsZero())
	assert.Zero(t, got.Duration())
	assert.Empty(t, got.Outputs)
}
