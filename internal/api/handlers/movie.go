package handlers

import (
	"net/http"
	"strconv"

	"cinelog/internal/controllers"

	"github.com/sirupsen/logrus"
)

// MovieHandler serves aggregated movie details
type MovieHandler struct {
	catalog *controllers.CatalogController
	logger  *logrus.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(catalog *controllers.CatalogController, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/movies/{id}
func (h *MovieHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid movie id"})
		return
	}

	details, err := h.catalog.GetMovie(r.Context(), tmdbID, r.URL.Query().Get("region"), useCache(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
