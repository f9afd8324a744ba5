package models

import "fmt"

// Query modes.
const (
	ModeExact = "exact"
	ModeFuzzy = "fuzzy"
)

// SearchQuery represents a search request.
type SearchQuery struct {
	Query    string  `json:"query"`
	Mode     string  `json:"mode,omitempty"`      // "exact" (default) or "fuzzy"
	Limit    int     `json:"limit,omitempty"`     // max results, defaults to 10, capped at 100
	MinScore float64 `json:"min_score,omitempty"` // drop results scoring below this
}

// Validate checks the query and fills defaults: empty mode becomes exact,
// limit is defaulted and capped. Returns an error for an empty query string
// or an unknown mode.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	switch q.Mode {
	case "":
		q.Mode = ModeExact
	case ModeExact, ModeFuzzy:
	default:
		return fmt.Errorf("unknown mode %q", q.Mode)
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return nil
}
