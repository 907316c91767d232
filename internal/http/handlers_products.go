package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/go-chi/chi/v5"
)

// HandleUpsertProduct adds a product to the catalog or replaces it
func (h *Handler) HandleUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.Record
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid product request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if strings.TrimSpace(string(req.ID)) == "" {
		writeError(w, http.StatusBadRequest, "id is required", "MISSING_ID")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required", "MISSING_NAME")
		return
	}

	doc := req.Document()
	prev, existed := h.store.Get(doc.ID)
	if err := h.store.Upsert(doc); err != nil {
		h.logger.Error().Err(err).Str("product_id", doc.ID).Msg("failed to store product")
		writeError(w, http.StatusInternalServerError, "failed to store product", "STORE_ERROR")
		return
	}
	if err := h.store.Flush(); err != nil {
		// Roll back so memory keeps matching what is on disk
		if existed {
			_ = h.store.Upsert(prev)
		} else {
			_ = h.store.Delete(doc.ID)
		}
		h.logger.Error().Err(err).Str("product_id", doc.ID).Msg("failed to flush catalog")
		writeError(w, http.StatusInternalServerError, "failed to persist product", "STORE_ERROR")
		return
	}

	h.logger.Info().
		Str("product_id", doc.ID).
		Str("name", doc.Name).
		Msg("product stored")

	writeJSON(w, http.StatusOK, ProductResponse{
		ID:      doc.ID,
		Success: true,
		Message: "product stored successfully",
	})
}

// HandleDeleteProduct removes a product from the catalog
func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prev, _ := h.store.Get(id)

	err := h.store.Delete(id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found", "NOT_FOUND")
		return
	}
	if err == nil {
		if err = h.store.Flush(); err != nil {
			// The file still holds the product; put it back in memory
			_ = h.store.Upsert(prev)
		}
	}
	if err != nil {
		h.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		writeError(w, http.StatusInternalServerError, "failed to delete product", "STORE_ERROR")
		return
	}

	h.logger.Info().Str("product_id", id).Msg("product deleted")

	writeJSON(w, http.StatusOK, ProductResponse{
		ID:      id,
		Success: true,
		Message: "product deleted",
	})
}
