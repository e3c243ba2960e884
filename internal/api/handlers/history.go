package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"cinelog/internal/models"

	"github.com/sirupsen/logrus"
)

// HistoryHandler records and lists watch history, the data source for
// personalized recommendations
type HistoryHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(db *models.Database, logger *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{
		db:     db,
		logger: logger,
	}
}

// watchRequest is the POST /api/history body
type watchRequest struct {
	UserID    string    `json:"user_id"`
	TMDBID    int64     `json:"tmdb_id"`
	Title     string    `json:"titulo"`
	Rating    float64   `json:"nota"`
	Genres    []string  `json:"generos"`
	WatchedAt time.Time `json:"assistido_em"`
}

// Record handles POST /api/history
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req watchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	if req.UserID == "" || req.TMDBID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and tmdb_id are required"})
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nota must be between 0 and 5"})
		return
	}

	record := &models.WatchRecord{
		UserID:    req.UserID,
		TMDBID:    req.TMDBID,
		Title:     req.Title,
		Rating:    req.Rating,
		Genres:    req.Genres,
		WatchedAt: req.WatchedAt,
	}

	if err := h.db.CreateWatchRecord(record); err != nil {
		h.logger.WithError(err).Error("Failed to store watch record")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// List handles GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter user is required"})
		return
	}

	records, err := h.db.GetWatchRecordsByUser(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load watch records")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if records == nil {
		records = []*models.WatchRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
