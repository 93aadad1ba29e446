// Package ranking scores and orders providers by desirability.
package ranking

import "github.com/hyperjump/sahayak/internal/models"

// Preferences are the user's stated ranking preferences.
type Preferences struct {
	PriceTier models.PriceTier
}

// ScoreBreakdown provides the contribution of each scoring component.
type ScoreBreakdown struct {
	FinalScore float64 `json:"final_score"`
	Rating     float64 `json:"rating"`
	TierMatch  float64 `json:"tier_match"`
	Proximity  float64 `json:"proximity"`
	Verified   float64 `json:"verified"`
	Reviews    float64 `json:"reviews"`
}

// RankedResult holds a provider with its computed score.
type RankedResult struct {
	Provider  models.Provider `json:"provider"`
	Score     float64         `json:"score"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}

// Providers returns the providers of results, in order.
func Providers(results []RankedResult) []models.Provider {
	out := make([]models.Provider, len(results))
	for i, r := range results {
		out[i] = r.Provider
	}
	return out
}
