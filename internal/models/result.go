package models

// SearchResult is a single ranked document hit.
type SearchResult struct {
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name,omitempty"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	Total     int            `json:"total"`
	QueryTime float64        `json:"query_time_ms"`
	Query     string         `json:"query"`
	Mode      string         `json:"mode"`
	// AutoFuzzy indicates fuzzy mode was retried automatically because the
	// exact query returned nothing.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
}
