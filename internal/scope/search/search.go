// Package search provides relevance search and typeahead suggestions over
// catalog documents.
//
// Both pipelines are pure: they scan the caller's snapshot on every call,
// keep no state between calls and never modify their input. A document
// matches a query when any single field contains every query keyword once
// case and diacritics are folded.
package search

import (
	"sort"
	"strings"
)

// Default result limits applied when a caller passes a non-positive limit
const (
	DefaultSearchLimit  = 50
	DefaultSuggestLimit = 10
)

// Document is the searchable projection of a catalog item
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	HasImage    bool   `json:"has_image"`
}

// ScoredDocument pairs a matching document with its relevance score
type ScoredDocument struct {
	Document Document `json:"document"`
	Score    int      `json:"score"`
}

// normalizedDocument caches the normalized fields of one document for the
// duration of a single call
type normalizedDocument struct {
	id          string
	name        string
	brand       string
	category    string
	description string
	hasImage    bool
}

func normalizeDocument(doc Document) normalizedDocument {
	return normalizedDocument{
		id:          Normalize(doc.ID),
		name:        Normalize(doc.Name),
		brand:       Normalize(doc.Brand),
		category:    Normalize(doc.Category),
		description: Normalize(doc.Description),
		hasImage:    doc.HasImage,
	}
}

// matches reports whether any single field holds all keywords
func (nd normalizedDocument) matches(keywords []string) bool {
	return containsAll(nd.name, keywords) ||
		containsAll(nd.id, keywords) ||
		containsAll(nd.brand, keywords) ||
		containsAll(nd.category, keywords) ||
		containsAll(nd.description, keywords)
}

// Engine runs the search and suggestion pipelines with a given weight
// configuration. The zero value is not usable; use NewEngine.
type Engine struct {
	scorer        *Scorer
	suggest       SuggestWeights
	categoryLabel func(string) string
}

// Option configures an Engine
type Option func(*Engine)

// WithWeights sets the relevance weights used by Search
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.scorer = NewScorer(w)
	}
}

// WithSuggestWeights sets the candidate weights used by Suggest
func WithSuggestWeights(w SuggestWeights) Option {
	return func(e *Engine) {
		e.suggest = w
	}
}

// WithCategoryLabel sets how a category is rendered as a suggestion.
// A nil fn keeps DefaultCategoryLabel.
func WithCategoryLabel(fn func(string) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.categoryLabel = fn
		}
	}
}

// NewEngine creates an engine using the default weight tables unless
// overridden by opts
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		scorer:        NewScorer(DefaultWeights()),
		suggest:       DefaultSuggestWeights(),
		categoryLabel: DefaultCategoryLabel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Search returns the documents matching query, most relevant first, using
// the default weights. See Engine.Search.
func Search(docs []Document, query string, limit int) []Document {
	return defaultEngine.Search(docs, query, limit)
}

// Search returns the documents matching query ordered by descending score.
// Equal scores keep their order in docs. A non-positive limit means
// DefaultSearchLimit. A blank query or empty docs yields an empty slice.
func (e *Engine) Search(docs []Document, query string, limit int) []Document {
	scored := e.SearchScored(docs, query, limit)
	results := make([]Document, len(scored))
	for i, sd := range scored {
		results[i] = sd.Document
	}
	return results
}

// SearchScored is Search, keeping each document's score
func (e *Engine) SearchScored(docs []Document, query string, limit int) []ScoredDocument {
	if strings.TrimSpace(query) == "" || len(docs) == 0 {
		return []ScoredDocument{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	normQuery := Normalize(query)
	keywords := strings.Fields(normQuery)
	if len(keywords) == 0 {
		return []ScoredDocument{}
	}

	scored := make([]ScoredDocument, 0)
	for _, doc := range docs {
		nd := normalizeDocument(doc)
		if !nd.matches(keywords) {
			continue
		}
		scored = append(scored, ScoredDocument{
			Document: doc,
			Score:    e.scorer.score(nd, normQuery, keywords),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}
