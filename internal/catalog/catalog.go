// Package catalog defines the read-only provider store and its implementations.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/pkg/utils"
)

// ErrNotFound is returned by ByID when no provider has the requested id.
var ErrNotFound = errors.New("provider not found")

// Catalog is a read-only provider repository grouped by locality.
type Catalog interface {
	// ByLocality returns the providers of the first locality whose name is
	// contained in city (case-insensitive). A non-empty category filters by
	// case-insensitive equality. Unknown localities yield an empty slice.
	ByLocality(ctx context.Context, city, category string) ([]models.Provider, error)
	// ByID returns ErrNotFound on a miss.
	ByID(ctx context.Context, id string) (models.Provider, error)
	// Categories returns the distinct categories of a locality in first-seen order.
	Categories(ctx context.Context, city string) ([]string, error)
	All(ctx context.Context) ([]models.Provider, error)
	Localities() []string
	Close() error
}

// matchLocality returns the index of the first name contained in city, or -1.
func matchLocality(names []string, city string) int {
	if strings.TrimSpace(city) == "" {
		return -1
	}
	for i, name := range names {
		if name != "" && utils.ContainsFold(city, name) {
			return i
		}
	}
	return -1
}

func distinctCategories(providers []models.Provider) []string {
	seen := make(map[string]struct{}, len(providers))
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
