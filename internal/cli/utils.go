// Package cli provides output formatting for the sahayak command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const rule = "─────────────────────────────────────────────────────────"

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// WriteResult writes an assistant reply to w in the given format.
func WriteResult(w io.Writer, result *models.SearchResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, result)
	}
	fmt.Fprintf(w, "\n%s\n", result.ResponseText)
	if len(result.Providers) > 0 {
		fmt.Fprintln(w)
		for i, p := range result.Providers {
			writeOneProvider(w, i+1, p)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w, "\nYou could also ask:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	return nil
}

// WriteResults writes one reply per query. JSON output pairs each query with its result.
func WriteResults(w io.Writer, queries []string, results []models.SearchResult, format OutputFormat) error {
	if format == OutputJSON {
		type entry struct {
			Query  string              `json:"query"`
			Result models.SearchResult `json:"result"`
		}
		out := make([]entry, len(results))
		for i := range results {
			out[i] = entry{Query: queries[i], Result: results[i]}
		}
		return writeJSON(w, out)
	}
	for i := range results {
		fmt.Fprintf(w, "\n> %s\n", queries[i])
		if err := WriteResult(w, &results[i], format); err != nil {
			return err
		}
	}
	return nil
}

// WriteProviders writes a provider list to w in the given format.
func WriteProviders(w io.Writer, providers []models.Provider, format OutputFormat) error {
	if format == OutputJSON {
		if providers == nil {
			providers = []models.Provider{}
		}
		return writeJSON(w, providers)
	}
	fmt.Fprintf(w, "\nFound %d providers\n\n", len(providers))
	for i, p := range providers {
		writeOneProvider(w, i+1, p)
	}
	return nil
}

// WriteProvider writes the full record of one provider.
func WriteProvider(w io.Writer, p models.Provider, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, p)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "Category: %s | Tier: %s | Rating: %.1f (%d reviews)\n",
		p.Category, p.PriceTier.Label(), p.Rating, p.ReviewCount)
	if p.IsVerified {
		fmt.Fprintln(w, "Verified")
	}
	fmt.Fprintf(w, "Address: %s\n", p.Address)
	if p.Phone != "" {
		fmt.Fprintf(w, "Phone: %s\n", p.Phone)
	}
	fmt.Fprintf(w, "Availability: %s\n", p.Availability)
	if p.YearEstablished > 0 {
		fmt.Fprintf(w, "Established: %d\n", p.YearEstablished)
	}
	if len(p.Services) > 0 {
		fmt.Fprintf(w, "Services: %s\n", strings.Join(p.Services, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", p.Description)
	return nil
}

// WriteCategories writes category listings.
func WriteCategories(w io.Writer, categories []models.Category, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, categories)
	}
	for _, c := range categories {
		fmt.Fprintf(w, "%s  %-18s %s\n", c.Icon, c.DisplayName, c.Description)
	}
	return nil
}

func writeOneProvider(w io.Writer, rank int, p models.Provider) {
	fmt.Fprintln(w, rule)
	marker := ""
	if p.Synthetic {
		marker = " [suggested]"
	}
	fmt.Fprintf(w, "%d. %s%s\n", rank, p.Name, marker)
	fmt.Fprintf(w, "   %.1f★ (%d reviews) | %s | %.1fkm\n", p.Rating, p.ReviewCount, p.PriceTier.Label(), p.DistanceKm)
	fmt.Fprintf(w, "   ID: %s\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(w, "   %s\n", utils.Truncate(p.Description, 120))
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
