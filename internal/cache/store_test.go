package cache

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"cinelog/internal/models"

	"github.com/sirupsen/logrus"
)

type testPayload struct {
	Name string `json:"name"`
}

func newTestStore(t *testing.T) (*Store, *models.Database) {
	t.Helper()

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewStore(db, logger), db
}

func TestGetOrRefreshServesFreshRecord(t *testing.T) {
	store, _ := newTestStore(t)

	calls := 0
	refresh := func() (interface{}, error) {
		calls++
		return testPayload{Name: "computed"}, nil
	}

	var first testPayload
	if err := store.GetOrRefresh("movie/603", time.Hour, refresh, &first); err != nil {
		t.Fatalf("First GetOrRefresh failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 refresh call, got %d", calls)
	}
	if first.Name != "computed" {
		t.Errorf("Unexpected payload: %+v", first)
	}

	// A record younger than the TTL must be served without refreshing
	var second testPayload
	if err := store.GetOrRefresh("movie/603", time.Hour, refresh, &second); err != nil {
		t.Fatalf("Second GetOrRefresh failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Fresh record triggered a refresh, calls = %d", calls)
	}
	if second.Name != "computed" {
		t.Errorf("Unexpected cached payload: %+v", second)
	}
}

func TestGetOrRefreshReplacesStaleRecord(t *testing.T) {
	store, _ := newTestStore(t)

	calls := 0
	refresh := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return testPayload{Name: "old"}, nil
		}
		return testPayload{Name: "new"}, nil
	}

	var out testPayload
	if err := store.GetOrRefresh("category/trending", time.Hour, refresh, &out); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	firstTS, ok := store.lastRefreshed("category/trending")
	if !ok {
		t.Fatal("Expected a refresh timestamp after populate")
	}

	// Move the clock past the TTL so the record counts as stale
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	time.Sleep(10 * time.Millisecond)

	if err := store.GetOrRefresh("category/trending", time.Hour, refresh, &out); err != nil {
		t.Fatalf("Stale refresh failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("Expected the stale record to refresh, calls = %d", calls)
	}
	if out.Name != "new" {
		t.Errorf("Expected refreshed payload, got %+v", out)
	}

	secondTS, ok := store.lastRefreshed("category/trending")
	if !ok {
		t.Fatal("Expected a refresh timestamp after overwrite")
	}
	if !secondTS.After(firstTS) {
		t.Errorf("Refresh timestamp did not advance: %v -> %v", firstTS, secondTS)
	}
}

func TestGetOrRefreshFailureLeavesStaleUntouched(t *testing.T) {
	store, db := newTestStore(t)

	populated := func() (interface{}, error) {
		return testPayload{Name: "stale-but-valid"}, nil
	}
	var out testPayload
	if err := store.GetOrRefresh("movie/155", time.Hour, populated, &out); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	refreshErr := errors.New("upstream down")
	failing := func() (interface{}, error) {
		return nil, refreshErr
	}
	if err := store.GetOrRefresh("movie/155", time.Hour, failing, &out); !errors.Is(err, refreshErr) {
		t.Fatalf("Expected the refresh error to propagate, got %v", err)
	}

	// The stale record must survive the failed refresh
	entry, err := db.GetCacheEntry("movie/155")
	if err != nil {
		t.Fatalf("Stale record disappeared: %v", err)
	}
	if string(entry.Payload) != `{"name":"stale-but-valid"}` {
		t.Errorf("Stale payload was modified: %s", entry.Payload)
	}
}

func TestGetOrRefreshConvergesOnFirstWriter(t *testing.T) {
	store, db := newTestStore(t)

	// The refresh simulates a concurrent populator winning the insert race
	// before our own write lands
	refresh := func() (interface{}, error) {
		winner := &models.CacheEntry{
			Key:     "movie/680",
			Payload: []byte(`{"name":"winner"}`),
		}
		if err := db.InsertCacheEntry(winner); err != nil {
			t.Fatalf("Failed to stage winning record: %v", err)
		}
		return testPayload{Name: "loser"}, nil
	}

	var out testPayload
	if err := store.GetOrRefresh("movie/680", time.Hour, refresh, &out); err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}

	// The loser must read back and serve the first writer's record
	if out.Name != "winner" {
		t.Errorf("Expected the first writer's payload, got %+v", out)
	}

	entry, err := db.GetCacheEntry("movie/680")
	if err != nil {
		t.Fatalf("Failed to read record: %v", err)
	}
	if string(entry.Payload) != `{"name":"winner"}` {
		t.Errorf("First writer's record was overwritten: %s", entry.Payload)
	}
}

func TestLastRefreshedMissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	if _, ok := store.lastRefreshed("movie/999"); ok {
		t.Error("Expected no timestamp for a missing key")
	}
}
