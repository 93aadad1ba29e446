package search

import (
	"errors"
	"fmt"

	"github.com/hyperjump/sahayak/internal/models"
)

var (
	// ErrInvalidLocation is returned for queries whose location cannot be used.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrInvalidQuery is returned for queries with a missing category or bad filters.
	ErrInvalidQuery = errors.New("invalid query")
)

// ProcessQuery validates the query and applies the default radius.
func ProcessQuery(query *models.ProviderQuery, defaultRadiusKm float64) error {
	if err := query.Location.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	if err := query.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if query.RadiusKm == 0 {
		query.RadiusKm = defaultRadiusKm
	}
	return nil
}
