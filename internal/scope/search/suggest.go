package search

import (
	"sort"
	"strings"
	"unicode"
)

// Provenance names the field a suggestion was drawn from
type Provenance string

// Suggestion provenance values
const (
	ProvenanceProduct  Provenance = "product"
	ProvenanceCategory Provenance = "category"
	ProvenanceBrand    Provenance = "brand"
)

// Suggestion is one typeahead entry
type Suggestion struct {
	Text       string     `json:"text"`
	Score      int        `json:"score"`
	Provenance Provenance `json:"provenance"`
}

// SuggestWeights scores suggestion candidates per source field
type SuggestWeights struct {
	NameExact     int `json:"name_exact"`
	NamePrefix    int `json:"name_prefix"`
	NameFirstWord int `json:"name_first_word"`
	NameContains  int `json:"name_contains"`

	CategoryExact    int `json:"category_exact"`
	CategoryPrefix   int `json:"category_prefix"`
	CategoryContains int `json:"category_contains"`

	BrandExact    int `json:"brand_exact"`
	BrandPrefix   int `json:"brand_prefix"`
	BrandContains int `json:"brand_contains"`
}

// DefaultSuggestWeights returns the stock suggestion weights
func DefaultSuggestWeights() SuggestWeights {
	return SuggestWeights{
		NameExact:        1000,
		NamePrefix:       800,
		NameFirstWord:    600,
		NameContains:     400,
		CategoryExact:    500,
		CategoryPrefix:   400,
		CategoryContains: 200,
		BrandExact:       300,
		BrandPrefix:      250,
		BrandContains:    100,
	}
}

// DefaultCategoryLabel renders a category suggestion
func DefaultCategoryLabel(category string) string {
	return "Category: " + category
}

// Suggest returns typeahead texts for query using the default weights.
// See Engine.Suggest.
func Suggest(docs []Document, query string, limit int) []string {
	return defaultEngine.Suggest(docs, query, limit)
}

// Suggest returns up to limit distinct suggestion texts for query, best
// first. A non-positive limit means DefaultSuggestLimit.
func (e *Engine) Suggest(docs []Document, query string, limit int) []string {
	candidates := e.SuggestCandidates(docs, query, limit)
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	return texts
}

// SuggestCandidates is Suggest, keeping score and provenance.
// Each document contributes at most its single best candidate; texts are
// deduplicated after sorting so the highest scoring instance wins.
func (e *Engine) SuggestCandidates(docs []Document, query string, limit int) []Suggestion {
	q := Normalize(query)
	if q == "" || len(docs) == 0 {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	pool := make([]Suggestion, 0)
	for _, doc := range docs {
		if best, ok := e.bestCandidate(doc, q); ok {
			pool = append(pool, best)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	seen := make(map[string]struct{}, len(pool))
	results := make([]Suggestion, 0, min(limit, len(pool)))
	for _, s := range pool {
		if _, dup := seen[s.Text]; dup {
			continue
		}
		seen[s.Text] = struct{}{}
		results = append(results, s)
		if len(results) == limit {
			break
		}
	}
	return results
}

// bestCandidate folds the name, category and brand candidates of doc into
// the highest scoring one. Ties keep the earlier source.
func (e *Engine) bestCandidate(doc Document, q string) (Suggestion, bool) {
	var best Suggestion
	for _, c := range e.candidates(doc, q) {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, best.Score > 0
}

func (e *Engine) candidates(doc Document, q string) []Suggestion {
	w := e.suggest
	out := make([]Suggestion, 0, 3)

	if name := Normalize(doc.Name); name != "" {
		score := strongest(
			tier{name == q, w.NameExact},
			tier{strings.HasPrefix(name, q), w.NamePrefix},
			tier{strings.HasPrefix(firstWord(name), q), w.NameFirstWord},
			tier{strings.Contains(name, q), w.NameContains},
		)
		if score > 0 {
			out = append(out, Suggestion{Text: doc.Name, Score: score, Provenance: ProvenanceProduct})
		}
	}

	if category := Normalize(doc.Category); category != "" {
		if score := tiered(category, q, w.CategoryExact, w.CategoryPrefix, w.CategoryContains); score > 0 {
			out = append(out, Suggestion{
				Text:       e.categoryLabel(doc.Category),
				Score:      score,
				Provenance: ProvenanceCategory,
			})
		}
	}

	if brand := Normalize(doc.Brand); brand != "" {
		if score := tiered(brand, q, w.BrandExact, w.BrandPrefix, w.BrandContains); score > 0 {
			out = append(out, Suggestion{Text: doc.Brand, Score: score, Provenance: ProvenanceBrand})
		}
	}

	return out
}

// tier is one relation between a field and the query with its weight
type tier struct {
	holds  bool
	weight int
}

// strongest returns the highest weight among the tiers that hold, or 0
func strongest(tiers ...tier) int {
	best := 0
	for _, t := range tiers {
		if t.holds && t.weight > best {
			best = t.weight
		}
	}
	return best
}

// tiered scores value against q on the exact, prefix and contains relations
func tiered(value, q string, exact, prefix, contains int) int {
	return strongest(
		tier{value == q, exact},
		tier{strings.HasPrefix(value, q), prefix},
		tier{strings.Contains(value, q), contains},
	)
}

func firstWord(s string) string {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i]
	}
	return s
}
