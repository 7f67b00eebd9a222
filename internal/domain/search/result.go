// Package search implements the relevance scorer: a deterministic,
// additive keyword heuristic over the catalog records. Every point in a
// result's score traces to exactly one rule or the base substring match.
package search

import "strings"

// Type tags a result with the record variant it came from.
type Type string

const (
	TypeHotel        Type = "hotel"
	TypeRestaurant   Type = "restaurant"
	TypeDailySpecial Type = "daily_special"
	TypeExperience   Type = "experience"
)

const (
	// BaseMatchScore is added when the normalized query appears as a
	// substring of the record haystack.
	BaseMatchScore = 50
	// SpecialBaseMatchScore replaces BaseMatchScore for daily specials;
	// exact-name matches on time-sensitive records rank higher.
	SpecialBaseMatchScore = 60
	// ResultCap bounds the returned result list.
	ResultCap = 10
)

// Result is a single scored search hit in its public response shape.
type Result struct {
	Type        Type           `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	Relevance   int            `json:"relevance"`
	Details     map[string]any `json:"details,omitempty"`
}

// Response is the public search envelope. TotalResults counts all
// non-zero-score matches, before the cap is applied to Results.
type Response struct {
	Query        string   `json:"query"`
	TotalResults int      `json:"totalResults"`
	Results      []Result `json:"results"`
}

// Normalize lower-cases and trims a raw query. An empty result means the
// query matches nothing.
func Normalize(query string) string {
	return strings.TrimSpace(strings.ToLower(query))
}
