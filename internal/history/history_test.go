package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.Append(ctx, Record{
			BuildID:    id,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			DurationMS: int64(10 * (i + 1)),
			Posts:      i + 1,
			Output:     "./blogs.html",
			Outcome:    "success",
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "run-3", records[0].BuildID)
	assert.Equal(t, "run-2", records[1].BuildID)
	assert.Equal(t, 3, records[0].Posts)
	assert.Equal(t, int64(30), records[0].DurationMS)
	assert.Equal(t, base.Add(2*time.Minute).Unix(), records[0].StartedAt.Unix())
}

func TestRecentEmpty(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(context.Background(), Record{
		BuildID:   "run-1",
		StartedAt: time.Now(),
		Outcome:   "success",
	}))

	records, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *Store

	assert.NoError(t, store.Append(context.Background(), Record{BuildID: "x"}))

	records, err := store.Recent(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, records)

	assert.NoError(t, store.Close())
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{BuildID: "persisted", StartedAt: time.Now(), Outcome: "success"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "persisted", records[0].BuildID)
}
