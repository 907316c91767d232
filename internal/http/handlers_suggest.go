package httpapi

import (
	"net/http"
	"strconv"
)

// HandleSuggest returns typeahead suggestions for the q parameter.
// detail=true also returns each suggestion's score and provenance.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, err := parseLimit(r, h.limits.SuggestDefault, h.limits.SuggestMax)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_LIMIT")
		return
	}

	detail, _ := strconv.ParseBool(r.URL.Query().Get("detail"))

	docs, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read catalog")
		writeError(w, http.StatusInternalServerError, "failed to read catalog", "STORE_ERROR")
		return
	}

	items := h.engine.SuggestCandidates(docs, query, limit)
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}

	resp := SuggestResponse{
		Suggestions: texts,
		Count:       len(texts),
		Query:       query,
	}
	if detail {
		resp.Items = items
	}

	h.logger.Debug().
		Str("query", query).
		Int("suggestions", len(texts)).
		Int("limit", limit).
		Msg("suggest completed")

	writeJSON(w, http.StatusOK, resp)
}
