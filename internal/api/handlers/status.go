package handlers

import (
	"net/http"
	"time"

	"cinelog/internal/models"

	"github.com/sirupsen/logrus"
)

// StatusHandler reports cache contents for administrative inspection
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalEntries  int            `json:"total_entries"`
	EntriesByKind map[string]int `json:"entries_by_kind"`
	Entries       []StatusEntry  `json:"entries"`
}

// StatusEntry is one cache record summary, newest first
type StatusEntry struct {
	Key         string    `json:"key"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllCacheEntries()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read cache entries")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	response := StatusResponse{
		TotalEntries:  len(entries),
		EntriesByKind: make(map[string]int),
		Entries:       make([]StatusEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		response.EntriesByKind[entry.Kind()]++
		response.Entries = append(response.Entries, StatusEntry{
			Key:         entry.Key,
			RefreshedAt: entry.RefreshedAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
