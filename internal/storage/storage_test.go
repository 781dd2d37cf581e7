package storage

import (
	"context"
	"testing"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddStampsPair(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	stored, err := store.Add(ctx, pair.Pair{Prompt: "p", Completion: "c"})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, stored.ID, ds[0].ID)
}

func TestMemoryStorePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	for _, prompt := range []string{"first", "second", "third"} {
		_, err := store.Add(ctx, pair.Pair{Prompt: prompt, Completion: "c"})
		require.NoError(t, err)
	}

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "first", ds[0].Prompt)
	assert.Equal(t, "second", ds[1].Prompt)
	assert.Equal(t, "third", ds[2].Prompt)
}

func TestMemoryStoreUpdateRefreshesTimestampKeepsID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	stored, err := store.Add(ctx, pair.Pair{Prompt: "p", Completion: "c"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, 0, pair.Pair{Prompt: "p2", Completion: "c2"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, updated.ID)
	assert.False(t, updated.Timestamp.Before(stored.Timestamp))
	assert.Equal(t, "p2", updated.Prompt)
}

func TestMemoryStoreIndexBounds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	_, err := store.Get(ctx, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = store.Update(ctx, -1, pair.Pair{})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.ErrorIs(t, store.Delete(ctx, 5), ErrIndexOutOfRange)
}

func TestMemoryStoreDeleteShiftsIndices(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	for _, prompt := range []string{"a", "b", "c"} {
		_, err := store.Add(ctx, pair.Pair{Prompt: prompt, Completion: "x"})
		require.NoError(t, err)
	}

	require.NoError(t, store.Delete(ctx, 1))

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "a", ds[0].Prompt)
	assert.Equal(t, "c", ds[1].Prompt)
}

func TestMemoryStoreReplaceAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	_, err := store.Add(ctx, pair.Pair{Prompt: "old", Completion: "x"})
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, pair.Dataset{
		{Prompt: "new-1", Completion: "y"},
		{Prompt: "new-2", Completion: "z"},
	}))

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.NotEmpty(t, ds[0].ID)

	require.NoError(t, store.Clear(ctx))
	ds, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestMemoryStoreRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	collector := NewSimpleMetricsCollector()
	store := NewMemoryStore(collector)

	_, err := store.Add(ctx, pair.Pair{Prompt: "p", Completion: "c"})
	require.NoError(t, err)
	_, err = store.Get(ctx, 10)
	assert.Error(t, err)

	metrics := collector.GetMetrics()
	require.Len(t, metrics, 2)
	assert.True(t, metrics[0].Success)
	assert.False(t, metrics[1].Success)
	assert.Equal(t, "memory", metrics[0].Backend)
}

func TestGitStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewGitStore(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Health(ctx))

	stored, err := store.Add(ctx, pair.Pair{Prompt: "git prompt", Completion: "git completion", Tags: []string{"t"}})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "git prompt", ds[0].Prompt)
	assert.Equal(t, []string{"t"}, ds[0].Tags)
}

func TestGitStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewGitStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.Add(ctx, pair.Pair{Prompt: "one", Completion: "1"})
	require.NoError(t, err)
	_, err = store.Add(ctx, pair.Pair{Prompt: "two", Completion: "2"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, 0, pair.Pair{Prompt: "one-edited", Completion: "1"})
	require.NoError(t, err)
	assert.Equal(t, "one-edited", updated.Prompt)

	require.NoError(t, store.Delete(ctx, 1))

	ds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "one-edited", ds[0].Prompt)
}

func TestGitStoreEmptyRepositoryListsEmpty(t *testing.T) {
	ctx := context.Background()
	store, err := NewGitStore(t.TempDir(), nil)
	require.NoError(t, err)

	ds, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestSeedSampleData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)

	n, err := SeedSampleData(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// A second seed on a populated store is a no-op.
	n, err = SeedSampleData(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, n)

	ds, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ds, 5)
	assert.Equal(t, "What is a function?", ds[0].Prompt)
}
