package ranking

import (
	"math"
	"sort"

	"github.com/hyperjump/sahayak/internal/models"
)

// Ranker scores providers with a weighted sum of rating, price-tier match,
// proximity, verification and review volume.
type Ranker struct {
	config *RankingConfig
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	return &Ranker{config: config}
}

// MaxResults is the length cap applied by Rank.
func (r *Ranker) MaxResults() int {
	return r.config.MaxResults
}

// Score returns the desirability score of p.
func (r *Ranker) Score(p models.Provider, prefs Preferences) float64 {
	return r.ScoreWithBreakdown(p, prefs).FinalScore
}

// ScoreWithBreakdown returns the score of p with each component's contribution.
func (r *Ranker) ScoreWithBreakdown(p models.Provider, prefs Preferences) *ScoreBreakdown {
	c := r.config
	b := &ScoreBreakdown{
		Rating:    p.Rating * c.RatingWeight,
		Proximity: (c.ProximityCapKm - math.Min(math.Max(p.DistanceKm, 0), c.ProximityCapKm)) * c.ProximityWeight,
		Reviews:   math.Min(float64(p.ReviewCount)/c.ReviewsPerPoint, c.MaxReviewPoints),
	}
	if prefs.PriceTier != "" && p.PriceTier == prefs.PriceTier {
		b.TierMatch = c.TierMatchBonus
	}
	if p.IsVerified {
		b.Verified = c.VerifiedBonus
	}
	b.FinalScore = b.Rating + b.TierMatch + b.Proximity + b.Verified + b.Reviews
	return b
}

// Rank scores providers and returns at most MaxResults of them by descending
// score. Equal scores keep their input order. query is the user's text and
// does not affect the score.
func (r *Ranker) Rank(query string, providers []models.Provider, prefs Preferences) []RankedResult {
	results := make([]RankedResult, len(providers))
	for i, p := range providers {
		b := r.ScoreWithBreakdown(p, prefs)
		results[i] = RankedResult{Provider: p, Score: b.FinalScore, Breakdown: b}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return TopN(results, r.config.MaxResults)
}

// TopN returns the first n results (or all if fewer).
func TopN(results []RankedResult, n int) []RankedResult {
	if n <= 0 || len(results) <= n {
		return results
	}
	return results[:n]
}
