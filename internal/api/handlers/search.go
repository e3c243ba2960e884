package handlers

import (
	"net/http"
	"strconv"

	"cinelog/internal/controllers"

	"github.com/sirupsen/logrus"
)

// SearchHandler serves title search passthrough results
type SearchHandler struct {
	catalog *controllers.CatalogController
	logger  *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(catalog *controllers.CatalogController, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/search
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page"})
			return
		}
		page = parsed
	}

	results, err := h.catalog.Search(r.Context(), query, page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"resultados": results})
}
