// Package httpapi provides HTTP handlers and data transfer objects for the catalog search API.
package httpapi

import "github.com/dsjohal14/catalogsearch/internal/scope/search"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	DocCount int    `json:"doc_count"`
}

// ProductResponse represents the result of a product write
type ProductResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SearchRequest represents a search request body
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"` // 0 means the configured default
}

// SearchResult represents a single ranked product
type SearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	HasImage    bool   `json:"has_image"`
	Score       int    `json:"score"`
}

// SearchResponse represents search results
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
	Query   string         `json:"query"`
}

// SuggestResponse represents typeahead suggestions
type SuggestResponse struct {
	Suggestions []string            `json:"suggestions"`
	Items       []search.Suggestion `json:"items,omitempty"` // only with detail=true
	Count       int                 `json:"count"`
	Query       string              `json:"query"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
