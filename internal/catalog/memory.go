package catalog

import (
	"context"
	"strings"

	"github.com/hyperjump/sahayak/internal/models"
)

// Memory is an immutable in-memory catalog. Safe for concurrent reads.
type Memory struct {
	names  []string
	groups [][]models.Provider
	byID   map[string]models.Provider
	all    []models.Provider
}

// NewMemory builds a catalog from ds. Providers are deep-copied.
func NewMemory(ds *Dataset) (*Memory, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	m := &Memory{
		names:  make([]string, 0, len(ds.Localities)),
		groups: make([][]models.Provider, 0, len(ds.Localities)),
		byID:   make(map[string]models.Provider, ds.Size()),
		all:    make([]models.Provider, 0, ds.Size()),
	}
	for _, loc := range ds.Localities {
		group := make([]models.Provider, len(loc.Providers))
		for i, p := range loc.Providers {
			group[i] = p.Clone()
			m.byID[p.ID] = group[i]
		}
		m.names = append(m.names, loc.Name)
		m.groups = append(m.groups, group)
		m.all = append(m.all, group...)
	}
	return m, nil
}

// NewDefaultMemory builds a catalog from the embedded dataset.
func NewDefaultMemory() (*Memory, error) {
	ds, err := DefaultDataset()
	if err != nil {
		return nil, err
	}
	return NewMemory(ds)
}

func (m *Memory) ByLocality(ctx context.Context, city, category string) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := matchLocality(m.names, city)
	if idx < 0 {
		return []models.Provider{}, nil
	}
	return filterCategory(m.groups[idx], category), nil
}

func (m *Memory) ByID(ctx context.Context, id string) (models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return models.Provider{}, err
	}
	p, ok := m.byID[id]
	if !ok {
		return models.Provider{}, ErrNotFound
	}
	return p.Clone(), nil
}

func (m *Memory) Categories(ctx context.Context, city string) ([]string, error) {
	providers, err := m.ByLocality(ctx, city, "")
	if err != nil {
		return nil, err
	}
	return distinctCategories(providers), nil
}

func (m *Memory) All(ctx context.Context) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneAll(m.all), nil
}

func (m *Memory) Localities() []string {
	return append([]string(nil), m.names...)
}

// Dataset returns a copy of the catalog content as a Dataset.
func (m *Memory) Dataset() *Dataset {
	ds := &Dataset{Localities: make([]Locality, len(m.names))}
	for i, name := range m.names {
		ds.Localities[i] = Locality{Name: name, Providers: cloneAll(m.groups[i])}
	}
	return ds
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func filterCategory(providers []models.Provider, category string) []models.Provider {
	out := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func cloneAll(providers []models.Provider) []models.Provider {
	out := make([]models.Provider, len(providers))
	for i, p := range providers {
		out[i] = p.Clone()
	}
	return out
}
