package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/sahayak/internal/models"
)

func writeYAML(t *testing.T, path string, ds *Dataset) {
	t.Helper()
	data, err := yaml.Marshal(ds)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestLoadDataset_EmptyPathUsesDefault(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	assert.Equal(t, 24, ds.Size())
}

func TestLoadDataset_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yml")
	writeYAML(t, path, smallDataset())

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, ds.Localities, 2)
	assert.Equal(t, "Kota", ds.Localities[1].Name)
	assert.Equal(t, models.PricePremium, ds.Localities[0].Providers[1].PriceTier)
}

func TestLoadDataset_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDataset(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	csv := filepath.Join(dir, "providers.csv")
	require.NoError(t, os.WriteFile(csv, []byte("id,name\n"), 0644))
	_, err = LoadDataset(csv)
	assert.ErrorContains(t, err, "unsupported dataset format")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("localities: [\n"), 0644))
	_, err = LoadDataset(broken)
	assert.Error(t, err)
}

func TestXLSX_LoadsWorkbookWrittenByWriteXLSX(t *testing.T) {
	ds, err := DefaultDataset()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "providers.xlsx")
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, ds))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Size(), loaded.Size())

	m, err := NewMemory(loaded)
	require.NoError(t, err)
	catalogContract(t, m)
}

func TestParseXLSX_RejectsBadRating(t *testing.T) {
	ds := smallDataset()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, ds))

	// Out-of-range values survive the sheet and are caught by validation.
	ds.Localities[0].Providers[0].Rating = 7
	var bad bytes.Buffer
	require.NoError(t, WriteXLSX(&bad, ds))

	_, err := ParseXLSX(&buf)
	require.NoError(t, err)
	_, err = ParseXLSX(&bad)
	assert.ErrorContains(t, err, "rating")
}
