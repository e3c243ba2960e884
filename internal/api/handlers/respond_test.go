package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinelog/internal/controllers"
	"cinelog/internal/services/tmdb"

	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestWriteErrorDegradesUpstreamFailures(t *testing.T) {
	upstream := &tmdb.UpstreamError{Endpoint: "/movie/603", Attempts: 3, Err: errors.New("status 500")}
	aggregation := &controllers.AggregationError{Kind: "movie", TMDBID: 603, Err: upstream}

	for _, err := range []error{upstream, aggregation} {
		rec := httptest.NewRecorder()
		writeError(rec, discardLogger(), err)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("%T: expected 502, got %d", err, rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Invalid error body: %v", err)
		}
		if body["error"] != "content unavailable" {
			t.Errorf("Expected degraded message, got %q", body["error"])
		}
	}
}

func TestWriteErrorGenericFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, discardLogger(), errors.New("database closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestUseCache(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"/api/movies/603", true},
		{"/api/movies/603?cache=1", true},
		{"/api/movies/603?cache=0", false},
		{"/api/movies/603?cache=false", false},
		{"/api/movies/603?cache=no", false},
	}

	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, c.url, nil)
		if got := useCache(r); got != c.want {
			t.Errorf("useCache(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}
