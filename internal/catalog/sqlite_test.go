package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_Contract(t *testing.T) {
	store := newTestSQLite(t)
	ds, err := DefaultDataset()
	require.NoError(t, err)
	require.NoError(t, store.Import(context.Background(), ds))

	catalogContract(t, store)
	assert.Equal(t, []string{"Jaipur", "Kota", "Ajmer", "Bundi", "Delhi", "Mumbai", "Bangalore"}, store.Localities())
}

func TestSQLite_ImportReplaces(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	ds, err := DefaultDataset()
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, ds))
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 24, n)

	require.NoError(t, store.Import(ctx, smallDataset()))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = store.ByID(ctx, "jpr_plmb_001")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"Jaipur", "Kota"}, store.Localities())
}

func TestSQLite_ImportRejectsInvalidDataset(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.Import(ctx, smallDataset()))

	bad := smallDataset()
	bad.Localities[1].Providers[0].ID = "a"
	assert.Error(t, store.Import(ctx, bad))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestSQLite_EmptyDatabase(t *testing.T) {
	store := newTestSQLite(t)
	got, err := store.ByLocality(context.Background(), "Jaipur", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_SizeBytes(t *testing.T) {
	store := newTestSQLite(t)
	require.NoError(t, store.Import(context.Background(), smallDataset()))
	n, err := store.SizeBytes()
	require.NoError(t, err)
	assert.Positive(t, n)
}
