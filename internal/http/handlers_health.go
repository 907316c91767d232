package httpapi

import "net/http"

// HandleHealth returns API health status and document count
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	count := h.store.Count()
	resp := HealthResponse{
		Status:   "healthy",
		DocCount: count,
	}

	h.logger.Debug().Int("doc_count", count).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
