package leads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/screening/internal/models"
)

func testSummary(score int, priority bool) models.Summary {
	return models.Summary{
		SessionID:      fmt.Sprintf("session-%d", score),
		AssessmentType: "substance_use",
		Score:          score,
		MaxScore:       24,
		Severity:       "moderate",
		ResultText:     "Moderate substance use concerns",
		Priority:       priority,
		CompletedAt:    time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "file database", dbPath: filepath.Join(t.TempDir(), "leads.db")},
		{name: "creates parent directories", dbPath: filepath.Join(t.TempDir(), "nested", "dir", "leads.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStore(tt.dbPath)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			version, err := store.schemaVersion(context.Background())
			require.NoError(t, err)
			assert.Equal(t, len(migrations), version)
		})
	}
}

func TestSQLiteStore_ReopenKeepsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), testSummary(10, false)))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	leads, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(ctx, testSummary(10, false)))
	require.NoError(t, store.Record(ctx, testSummary(12, true)))
	require.NoError(t, store.Record(ctx, testSummary(14, true)))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 14, all[0].Score, "most recent first")
	assert.Equal(t, "session-14", all[0].SessionID)
	assert.True(t, all[0].Priority)
	assert.Equal(t, "Moderate substance use concerns", all[0].ResultText)
	assert.True(t, all[0].CompletedAt.Equal(testSummary(14, true).CompletedAt))
	assert.False(t, all[0].RecordedAt.IsZero())

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	n, err := store.CountPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLiteStore_RejectsInvalidSummary(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	bad := testSummary(30, false)
	err = store.Record(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid summary")

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileSink_RecordAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "leads.json")
	sink := NewFileSink(path)

	all, err := sink.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, sink.Record(context.Background(), testSummary(5, false)))
	require.NoError(t, sink.Record(context.Background(), testSummary(15, true)))

	all, err = sink.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 5, all[0].Score)
	assert.Equal(t, 15, all[1].Score)
	assert.Equal(t, path, sink.Path())
}

func TestFileSink_ReadAllBeforeDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet")
	sink := NewFileSink(filepath.Join(dir, "leads.json"))

	all, err := sink.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoDirExists(t, dir, "reading does not create directories")
}

func TestFileSink_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			// Separate sinks hold separate file handles, like separate processes
			errs <- NewFileSink(path).Record(context.Background(), testSummary(score, false))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := NewFileSink(path).ReadAll()
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestFileSink_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	err := NewFileSink(path).Record(context.Background(), testSummary(1, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestFileSink_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "leads.json"))
	require.NoError(t, sink.Record(context.Background(), testSummary(3, false)))

	matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

type failingSink struct{ err error }

func (f failingSink) Record(context.Context, models.Summary) error { return f.err }

func TestMulti(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	boom := errors.New("boom")
	multi := Multi{failingSink{err: boom}, store}

	err = multi.Record(context.Background(), testSummary(8, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	// Later sinks still receive the summary
	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.NoError(t, Multi{}.Record(context.Background(), testSummary(8, false)))
}
