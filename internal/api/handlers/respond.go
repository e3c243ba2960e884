package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinelog/internal/controllers"
	"cinelog/internal/services/tmdb"

	"github.com/sirupsen/logrus"
)

// writeJSON writes v as a JSON response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to a degraded response instead of
// exposing upstream failures to the end user: exhausted upstream retries and
// failed aggregations both become a 502 "content unavailable", everything
// else a generic 500.
func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	var upstreamErr *tmdb.UpstreamError
	var aggErr *controllers.AggregationError

	switch {
	case errors.As(err, &aggErr), errors.As(err, &upstreamErr):
		logger.WithError(err).Warn("Content unavailable")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "content unavailable"})
	default:
		logger.WithError(err).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// useCache reports whether the request opted out of the cache via ?cache=false
func useCache(r *http.Request) bool {
	switch r.URL.Query().Get("cache") {
	case "0", "false", "no":
		return false
	}
	return true
}
