package handlers

import (
	"net/http"
	"strconv"

	"cinelog/internal/controllers"

	"github.com/sirupsen/logrus"
)

// SeriesHandler serves aggregated series details and seasons
type SeriesHandler struct {
	catalog *controllers.CatalogController
	logger  *logrus.Logger
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(catalog *controllers.CatalogController, logger *logrus.Logger) *SeriesHandler {
	return &SeriesHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Details handles GET /api/series/{id}
func (h *SeriesHandler) Details(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid series id"})
		return
	}

	details, err := h.catalog.GetSeries(r.Context(), tmdbID, useCache(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// Season handles GET /api/series/{id}/seasons/{number}
func (h *SeriesHandler) Season(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid series id"})
		return
	}

	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || number < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid season number"})
		return
	}

	season, err := h.catalog.GetSeason(r.Context(), tmdbID, number)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, season)
}
