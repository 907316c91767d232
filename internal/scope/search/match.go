package search

import "strings"

// Keywords splits a query into its normalized, whitespace-delimited keywords.
// A blank query yields no keywords.
func Keywords(query string) []string {
	return strings.Fields(Normalize(query))
}

// Matches reports whether text contains every keyword of query after both
// are normalized. A query without keywords never matches.
func Matches(text, query string) bool {
	return containsAll(Normalize(text), Keywords(query))
}

// containsAll is Matches over already normalized inputs
func containsAll(normalized string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		if !strings.Contains(normalized, kw) {
			return false
		}
	}
	return true
}
