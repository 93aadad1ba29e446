package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/sahayak/internal/models"
)

//go:embed data/providers.yaml
var defaultDataset []byte

// Locality is a named city or region and its providers, in dataset order.
type Locality struct {
	Name      string            `yaml:"name"`
	Providers []models.Provider `yaml:"providers"`
}

// Dataset is the full provider collection. Locality order is significant.
type Dataset struct {
	Localities []Locality `yaml:"localities"`
}

// DefaultDataset returns the embedded dataset.
func DefaultDataset() (*Dataset, error) {
	return ParseYAML(defaultDataset)
}

// LoadDataset reads a dataset from path. The format is chosen by extension
// (.yaml, .yml, .xlsx). An empty path loads the embedded dataset.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return DefaultDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xlsx":
		return ParseXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
}

// ParseYAML decodes and validates a YAML dataset.
func ParseYAML(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks locality names, id uniqueness, rating range, coordinates and price tiers.
func (d *Dataset) Validate() error {
	seen := make(map[string]string)
	for i, loc := range d.Localities {
		if strings.TrimSpace(loc.Name) == "" {
			return fmt.Errorf("locality %d: name cannot be empty", i)
		}
		for _, p := range loc.Providers {
			if p.ID == "" {
				return fmt.Errorf("locality %s: provider %q has no id", loc.Name, p.Name)
			}
			if prev, ok := seen[p.ID]; ok {
				return fmt.Errorf("duplicate provider id %q in %s and %s", p.ID, prev, loc.Name)
			}
			seen[p.ID] = loc.Name
			if !(p.Rating >= 0 && p.Rating <= 5) {
				return fmt.Errorf("provider %s: rating %v out of range [0,5]", p.ID, p.Rating)
			}
			if p.ReviewCount < 0 {
				return fmt.Errorf("provider %s: negative review count", p.ID)
			}
			if err := (models.Location{Latitude: p.Latitude, Longitude: p.Longitude}).Validate(); err != nil {
				return fmt.Errorf("provider %s: %w", p.ID, err)
			}
			if !p.PriceTier.Valid() {
				return fmt.Errorf("provider %s: unknown price tier %q", p.ID, p.PriceTier)
			}
		}
	}
	return nil
}

// Size returns the number of providers across all localities.
func (d *Dataset) Size() int {
	n := 0
	for _, loc := range d.Localities {
		n += len(loc.Providers)
	}
	return n
}
