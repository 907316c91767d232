package httpapi

import (
	"encoding/json"
	"net/http"
)

// HandleSearch ranks catalog products against a free-text query.
// GET reads q and limit from the URL; POST reads a SearchRequest body.
// A blank query yields an empty result list rather than an error.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	var limit int

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn().Err(err).Msg("invalid search request")
			writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
			return
		}
		n, err := resolveLimit(req.Limit, h.limits.SearchDefault, h.limits.SearchMax)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_LIMIT")
			return
		}
		limit = n
	} else {
		req.Query = r.URL.Query().Get("q")
		n, err := parseLimit(r, h.limits.SearchDefault, h.limits.SearchMax)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_LIMIT")
			return
		}
		limit = n
	}

	docs, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read catalog")
		writeError(w, http.StatusInternalServerError, "failed to read catalog", "STORE_ERROR")
		return
	}

	scored := h.engine.SearchScored(docs, req.Query, limit)

	results := make([]SearchResult, len(scored))
	for i, sd := range scored {
		results[i] = SearchResult{
			ID:          sd.Document.ID,
			Name:        sd.Document.Name,
			Brand:       sd.Document.Brand,
			Category:    sd.Document.Category,
			Description: sd.Document.Description,
			HasImage:    sd.Document.HasImage,
			Score:       sd.Score,
		}
	}

	h.logger.Info().
		Str("query", req.Query).
		Int("results", len(results)).
		Int("limit", limit).
		Int("scanned", len(docs)).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Count:   len(results),
		Query:   req.Query,
	})
}
