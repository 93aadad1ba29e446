package ranking

// RankingConfig holds the weights of the desirability score.
type RankingConfig struct {
	RatingWeight    float64 `yaml:"rating_weight"`     // default: 20 (per star)
	TierMatchBonus  float64 `yaml:"tier_match_bonus"`  // default: 30
	ProximityWeight float64 `yaml:"proximity_weight"`  // default: 5 (per km under the cap)
	ProximityCapKm  float64 `yaml:"proximity_cap_km"`  // default: 10
	VerifiedBonus   float64 `yaml:"verified_bonus"`    // default: 15
	ReviewsPerPoint float64 `yaml:"reviews_per_point"` // default: 10
	MaxReviewPoints float64 `yaml:"max_review_points"` // default: 10
	MaxResults      int     `yaml:"max_results"`       // default: 10
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		RatingWeight:    20,
		TierMatchBonus:  30,
		ProximityWeight: 5,
		ProximityCapKm:  10,
		VerifiedBonus:   15,
		ReviewsPerPoint: 10,
		MaxReviewPoints: 10,
		MaxResults:      10,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.RatingWeight == 0 {
		c.RatingWeight = defaults.RatingWeight
	}
	if c.TierMatchBonus == 0 {
		c.TierMatchBonus = defaults.TierMatchBonus
	}
	if c.ProximityWeight == 0 {
		c.ProximityWeight = defaults.ProximityWeight
	}
	if c.ProximityCapKm == 0 {
		c.ProximityCapKm = defaults.ProximityCapKm
	}
	if c.VerifiedBonus == 0 {
		c.VerifiedBonus = defaults.VerifiedBonus
	}
	if c.ReviewsPerPoint == 0 {
		c.ReviewsPerPoint = defaults.ReviewsPerPoint
	}
	if c.MaxReviewPoints == 0 {
		c.MaxReviewPoints = defaults.MaxReviewPoints
	}
	if c.MaxResults <= 0 {
		c.MaxResults = defaults.MaxResults
	}
}
