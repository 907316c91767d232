package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// errInvalidLimit is returned for negative or non-numeric limits
var errInvalidLimit = errors.New("limit must be a non-negative integer")

// Limits bounds the result counts clients may request
type Limits struct {
	SearchDefault  int
	SearchMax      int
	SuggestDefault int
	SuggestMax     int
}

// DefaultLimits returns the stock request limits
func DefaultLimits() Limits {
	return Limits{
		SearchDefault:  search.DefaultSearchLimit,
		SearchMax:      200,
		SuggestDefault: search.DefaultSuggestLimit,
		SuggestMax:     50,
	}
}

// Handler contains HTTP handlers for the API
type Handler struct {
	store  catalog.Store
	engine *search.Engine
	limits Limits
	logger zerolog.Logger
}

// NewHandler creates a new HTTP handler
// A nil engine uses the default weights.
func NewHandler(store catalog.Store, engine *search.Engine, limits Limits, logger zerolog.Logger) *Handler {
	if engine == nil {
		engine = search.NewEngine()
	}
	return &Handler{
		store:  store,
		engine: engine,
		limits: limits,
		logger: logger,
	}
}

// Routes registers the API endpoints on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Post("/products", h.HandleUpsertProduct)
	r.Delete("/products/{id}", h.HandleDeleteProduct)
	r.Get("/search", h.HandleSearch)
	r.Post("/search", h.HandleSearch)
	r.Get("/suggest", h.HandleSuggest)
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// resolveLimit applies the default for 0 and clamps to max
func resolveLimit(requested, def, max int) (int, error) {
	switch {
	case requested < 0:
		return 0, errInvalidLimit
	case requested == 0:
		return def, nil
	case requested > max:
		return max, nil
	}
	return requested, nil
}

// parseLimit reads the limit query parameter
func parseLimit(r *http.Request, def, max int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidLimit
	}
	return resolveLimit(n, def, max)
}
