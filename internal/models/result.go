package models

// SearchResult is the envelope returned to the presentation layer for one query.
type SearchResult struct {
	// Providers are ordered by relevance, best first.
	Providers    []Provider `json:"providers"`
	ResponseText string     `json:"response_text"`
	Suggestions  []string   `json:"suggestions"`
	// NeedsMoreInfo is true when the service category or the location is unresolved.
	NeedsMoreInfo bool         `json:"needs_more_info"`
	Intent        *QueryIntent `json:"intent,omitempty"`
}
