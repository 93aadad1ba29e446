package models

import (
	"fmt"
	"strings"
)

// IntentLabel is the coarse purpose of a user query.
type IntentLabel string

const (
	IntentSearch  IntentLabel = "search"
	IntentBooking IntentLabel = "booking"
	IntentCompare IntentLabel = "compare"
	IntentHelp    IntentLabel = "help"
)

// QueryIntent is the parsed form of a free-text query. Created fresh per query.
type QueryIntent struct {
	Intent             IntentLabel `json:"intent"`
	ServiceCategory    string      `json:"service_category,omitempty"`
	PriceTier          PriceTier   `json:"price_tier,omitempty"`
	Confidence         float64     `json:"confidence"`
	SuggestedQuestions []string    `json:"suggested_questions"`
}

// ProviderQuery is a structured provider search.
type ProviderQuery struct {
	Category  string    `json:"category"`
	Location  Location  `json:"location"`
	PriceTier PriceTier `json:"price_tier,omitempty"`
	// RadiusKm bounds the distance filter. Zero means the configured default.
	RadiusKm float64 `json:"radius_km,omitempty"`
}

// Validate ensures the query has a category, a usable location and a known tier.
// Returns an error describing the first problem found.
func (q *ProviderQuery) Validate() error {
	q.Category = strings.TrimSpace(q.Category)
	if q.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if err := q.Location.Validate(); err != nil {
		return err
	}
	if q.PriceTier != "" && !q.PriceTier.Valid() {
		return fmt.Errorf("unknown price tier %q", q.PriceTier)
	}
	if q.RadiusKm < 0 {
		return fmt.Errorf("radius cannot be negative: %v", q.RadiusKm)
	}
	return nil
}
