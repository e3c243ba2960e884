package handlers

import (
	"net/http"
	"strconv"

	"cinelog/internal/controllers"
	"cinelog/internal/models"

	"github.com/sirupsen/logrus"
)

// CategoryHandler serves the precomputed category lists
type CategoryHandler struct {
	categories *controllers.CategoryController
	logger     *logrus.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *controllers.CategoryController, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// ServeHTTP handles GET /api/categories/{name}
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.PathValue("name"))
	if !category.Valid() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	list, err := h.categories.GetCategory(r.Context(), category, limit, useCache(r), r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
