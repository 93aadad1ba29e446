package assistant

import (
	"fmt"

	"github.com/hyperjump/sahayak/internal/models"
)

const (
	noResultsText    = "I couldn't find any service providers matching your criteria in your area. Would you like to try a different location or service type?"
	genericErrorText = "Sorry, something went wrong while searching. Please try again."
	askServiceText   = "What service are you looking for?"
)

// Compose summarizes providers as a chat reply. providers must be ordered by
// relevance; the single-result form describes providers[0].
func Compose(query string, providers []models.Provider, loc *models.Location) string {
	switch len(providers) {
	case 0:
		return noResultsText
	case 1:
		p := providers[0]
		return fmt.Sprintf("I found %s, a %s option with %.1f stars. They're located %.1fkm away. Would you like to see more details?",
			p.Name, p.PriceTier.Label(), p.Rating, p.DistanceKm)
	default:
		var sum float64
		closest := providers[0].DistanceKm
		for _, p := range providers {
			sum += p.Rating
			closest = min(closest, p.DistanceKm)
		}
		return fmt.Sprintf("I found %d service providers near you with an average rating of %.1f stars. The closest one is %.1fkm away. Would you like me to show you the top recommendations?",
			len(providers), sum/float64(len(providers)), closest)
	}
}
