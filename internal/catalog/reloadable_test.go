package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/models"
)

func TestReloadable_SwapsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	writeYAML(t, path, smallDataset())

	r, err := NewReloadable(FileLoader(path), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	var reloads int
	r.OnReload(func(*Memory) { reloads++ })
	assert.Equal(t, 1, reloads)

	got, err := r.ByLocality(ctx, "Kota", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(got))

	ds := smallDataset()
	ds.Localities[1].Providers = append(ds.Localities[1].Providers,
		models.Provider{ID: "d", Name: "Kota Pipes", Category: "plumber", Rating: 4, PriceTier: models.PriceCheap})
	writeYAML(t, path, ds)

	old := r.Snapshot()
	require.NoError(t, r.Reload())
	assert.Equal(t, 2, reloads)
	assert.NotSame(t, old, r.Snapshot())

	got, err = r.ByLocality(ctx, "Kota", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, ids(got))
}

func TestReloadable_KeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	writeYAML(t, path, smallDataset())

	r, err := NewReloadable(FileLoader(path), nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("localities: [\n"), 0644))
	assert.Error(t, r.Reload())

	bad := smallDataset()
	bad.Localities[0].Providers[0].Rating = 9
	writeYAML(t, path, bad)
	assert.Error(t, r.Reload())

	p, err := r.ByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 4.1, p.Rating)
}

func TestNewReloadable_FailsOnFirstLoad(t *testing.T) {
	_, err := NewReloadable(FileLoader(filepath.Join(t.TempDir(), "missing.yaml")), nil)
	assert.Error(t, err)
}
