package search

import "strings"

// Weights is the relevance weight table used by Scorer.
// Name signals are tiered: only the strongest whole-name signal applies,
// and each keyword×word pair contributes its strongest word signal.
type Weights struct {
	NameExact    int `json:"name_exact"`
	NamePrefix   int `json:"name_prefix"`
	NameContains int `json:"name_contains"`

	WordExact    int `json:"word_exact"`
	WordPrefix   int `json:"word_prefix"`
	WordContains int `json:"word_contains"`

	Brand       int `json:"brand"`
	Category    int `json:"category"`
	Description int `json:"description"`
	Image       int `json:"image"`
}

// DefaultWeights returns the stock weight table
func DefaultWeights() Weights {
	return Weights{
		NameExact:    1000,
		NamePrefix:   500,
		NameContains: 200,
		WordExact:    100,
		WordPrefix:   50,
		WordContains: 20,
		Brand:        150,
		Category:     100,
		Description:  30,
		Image:        10,
	}
}

// Scorer computes relevance scores from a fixed weight table.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer using the given weights
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Weights returns the scorer's weight table
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score returns the relevance of doc for query. The result is never negative.
// Score does not filter; callers are expected to score only documents that
// matched the query.
func (s *Scorer) Score(doc Document, query string) int {
	return s.score(normalizeDocument(doc), Normalize(query), Keywords(query))
}

func (s *Scorer) score(nd normalizedDocument, query string, keywords []string) int {
	w := s.weights
	score := 0

	switch {
	case query == "":
	case nd.name == query:
		score += w.NameExact
	case strings.HasPrefix(nd.name, query):
		score += w.NamePrefix
	case strings.Contains(nd.name, query):
		score += w.NameContains
	}

	words := strings.Fields(nd.name)
	for _, kw := range keywords {
		for _, word := range words {
			switch {
			case word == kw:
				score += w.WordExact
			case strings.HasPrefix(word, kw):
				score += w.WordPrefix
			case strings.Contains(word, kw):
				score += w.WordContains
			}
		}
	}

	if query != "" {
		if strings.Contains(nd.brand, query) {
			score += w.Brand
		}
		if strings.Contains(nd.category, query) {
			score += w.Category
		}
		if strings.Contains(nd.description, query) {
			score += w.Description
		}
	}

	if nd.hasImage {
		score += w.Image
	}

	if score < 0 {
		return 0
	}
	return score
}
