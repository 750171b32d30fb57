package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	c1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c2.Close())
}

func TestUpsertAndGet(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	e := Entry{Path: "designs/a.fig", FileType: "design", Version: 20, NodeCount: 4, Digest: "abc123"}
	require.NoError(t, c.Upsert(ctx, e))

	got, err := c.Get(ctx, "designs/a.fig")
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUpsertReplaces(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, Entry{Path: "a.fig", FileType: "design", Version: 19, NodeCount: 2, Digest: "old"}))
	require.NoError(t, c.Upsert(ctx, Entry{Path: "a.fig", FileType: "design", Version: 20, NodeCount: 3, Digest: "new"}))

	got, err := c.Get(ctx, "a.fig")
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.Version)
	assert.Equal(t, "new", got.Digest)

	entries, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetMissing(t *testing.T) {
	c := openTemp(t)

	_, err := c.Get(context.Background(), "nope.fig")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListOrderedByPath(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	for _, path := range []string{"z.fig", "a.fig", "m.fig"} {
		require.NoError(t, c.Upsert(ctx, Entry{Path: path, FileType: "design", Digest: "d"}))
	}

	entries, err := c.List(ctx)
	require.NoError(t, err)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"a.fig", "m.fig", "z.fig"}, paths)
}
