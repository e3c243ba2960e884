package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cinelog/internal/cache"
	"cinelog/internal/models"
	"cinelog/internal/services/tmdb"
)

func newCategoryEnv(t *testing.T, handler http.Handler) (*CategoryController, *models.Database) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	logger := testLogger()

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	client, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		t.Fatalf("Failed to build TMDB client: %v", err)
	}

	store := cache.NewStore(db, logger)
	return NewCategoryController(store, client, db, cfg, logger), db
}

// movieJSON builds one feed entry
func movieJSON(id int, title string, year int, rating float64, votes int) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"release_date":"%d-06-15","vote_average":%g,"vote_count":%d}`,
		id, title, year, rating, votes)
}

func TestGoatsFilterAndOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `{"page":1,"results":[%s,%s,%s,%s]}`,
				movieJSON(1, "Highly Rated Few Votes", 2010, 8.5, 400),
				movieJSON(2, "Great And Popular", 1994, 8.7, 20000),
				movieJSON(3, "Good But Not Great", 2005, 7.9, 15000),
				movieJSON(4, "Also Great", 1972, 8.7, 12000))
		case "2":
			fmt.Fprintf(w, `{"page":2,"results":[%s]}`,
				movieJSON(5, "Great Page Two", 1999, 8.2, 9000))
		default:
			w.Write([]byte(`{"page":3,"results":[]}`))
		}
	})

	ctrl, _ := newCategoryEnv(t, mux)

	list, err := ctrl.GetCategory(context.Background(), models.CategoryGoats, 20, false, "")
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if list.CacheType != "goats_20" {
		t.Errorf("Unexpected cache type: %q", list.CacheType)
	}

	// Only entries over both thresholds survive; ties on rating break
	// toward more votes
	if len(list.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d: %+v", len(list.Items), list.Items)
	}
	if list.Items[0].TMDBID != 2 || list.Items[1].TMDBID != 4 || list.Items[2].TMDBID != 5 {
		t.Errorf("Unexpected ranking: %d, %d, %d",
			list.Items[0].TMDBID, list.Items[1].TMDBID, list.Items[2].TMDBID)
	}
	if list.Items[0].Votes != 20000 {
		t.Errorf("Expected vote counts on goats entries, got %+v", list.Items[0])
	}
	if list.Items[0].Stars != 4.5 {
		t.Errorf("Expected 4.5 stars for 8.7, got %v", list.Items[0].Stars)
	}
}

func TestGoatsSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "2":
			http.Error(w, "flaky page", http.StatusInternalServerError)
		case "1", "3":
			fmt.Fprintf(w, `{"results":[%s]}`,
				movieJSON(10, "Survivor "+r.URL.Query().Get("page"), 2000, 8.5, 5000))
		}
	})

	ctrl, _ := newCategoryEnv(t, mux)

	list, err := ctrl.GetCategory(context.Background(), models.CategoryGoats, 20, false, "")
	if err != nil {
		t.Fatalf("A failed page must not fail the whole build: %v", err)
	}
	// Pages 1 and 3 still contribute
	if len(list.Items) != 2 {
		t.Errorf("Expected 2 items from the surviving pages, got %d", len(list.Items))
	}
}

func TestClassicsFilterAndOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.Write([]byte(`{"results":[]}`))
			return
		}
		fmt.Fprintf(w, `{"results":[%s,%s,%s,%s,%s]}`,
			movieJSON(1, "Modern Masterpiece", 2008, 9.0, 25000), // too recent
			movieJSON(2, "Old Classic", 1957, 8.9, 7000),
			movieJSON(3, "Other Classic Same Rating", 1975, 8.9, 9000),
			movieJSON(4, "Old But Underrated", 1960, 7.0, 4000), // rating too low
			movieJSON(5, "Old But Obscure", 1955, 8.0, 200))     // too few votes
	})

	ctrl, _ := newCategoryEnv(t, mux)

	list, err := ctrl.GetCategory(context.Background(), models.CategoryClassics, 12, false, "")
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}

	// Fewer qualifying films than the limit is served as-is, never padded
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 classics, got %d: %+v", len(list.Items), list.Items)
	}
	// Equal ratings break toward the older film
	if list.Items[0].TMDBID != 2 || list.Items[1].TMDBID != 3 {
		t.Errorf("Unexpected ranking: %d, %d", list.Items[0].TMDBID, list.Items[1].TMDBID)
	}
}

func TestRecommendedFallsBackToPopular(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results":[%s,%s,%s]}`,
			movieJSON(1, "Popular And Good", 2024, 7.8, 3000),
			movieJSON(2, "Popular But Weak", 2024, 5.9, 8000),
			movieJSON(3, "Also Good", 2023, 7.1, 2000))
	})

	ctrl, _ := newCategoryEnv(t, mux)

	// No user: the popular feed filtered by rating
	list, err := ctrl.GetCategory(context.Background(), models.CategoryRecommended, 20, false, "")
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 items over the rating floor, got %d", len(list.Items))
	}
	if list.Items[0].TMDBID != 1 || list.Items[1].TMDBID != 3 {
		t.Errorf("Unexpected items: %+v", list.Items)
	}
}

func TestRecommendedPersonalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[{"id":18,"name":"Drama"},{"id":28,"name":"Ação"}]}`))
	})
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("with_genres") {
		case "18":
			fmt.Fprintf(w, `{"results":[%s,%s]}`,
				movieJSON(101, "Drama Pick", 2015, 8.0, 5000),
				movieJSON(500, "Already Seen", 2010, 8.5, 30000))
		case "28":
			fmt.Fprintf(w, `{"results":[%s,%s]}`,
				movieJSON(102, "Action Pick", 2018, 7.5, 9000),
				movieJSON(101, "Drama Pick", 2015, 8.0, 5000)) // duplicate across genres
		default:
			w.Write([]byte(`{"results":[]}`))
		}
	})

	ctrl, db := newCategoryEnv(t, mux)

	records := []*models.WatchRecord{
		{UserID: "alice", TMDBID: 500, Title: "Already Seen", Rating: 5, Genres: []string{"Drama"}},
		{UserID: "alice", TMDBID: 501, Title: "Another Drama", Rating: 4.5, Genres: []string{"Drama"}},
		{UserID: "alice", TMDBID: 502, Title: "Some Action", Rating: 4, Genres: []string{"Ação"}},
		{UserID: "alice", TMDBID: 503, Title: "Disliked", Rating: 1, Genres: []string{"Terror"}},
	}
	for _, record := range records {
		if err := db.CreateWatchRecord(record); err != nil {
			t.Fatalf("Failed to seed history: %v", err)
		}
	}

	list, err := ctrl.GetCategory(context.Background(), models.CategoryRecommended, 20, false, "alice")
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}

	// Seen titles and cross-genre duplicates are excluded, remainder is
	// ordered by vote count
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %+v", len(list.Items), list.Items)
	}
	if list.Items[0].TMDBID != 102 || list.Items[1].TMDBID != 101 {
		t.Errorf("Unexpected ranking: %d, %d", list.Items[0].TMDBID, list.Items[1].TMDBID)
	}
}

func TestCategoryCachedServedWithoutUpstream(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/trending/movie/week", func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"results":[%s]}`, movieJSON(1, "Trending Now", 2026, 7.2, 1200))
	})

	ctrl, _ := newCategoryEnv(t, mux)

	if _, err := ctrl.GetCategory(context.Background(), models.CategoryTrending, 20, true, ""); err != nil {
		t.Fatalf("First GetCategory failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 upstream call, got %d", calls)
	}

	list, err := ctrl.GetCategory(context.Background(), models.CategoryTrending, 20, true, "")
	if err != nil {
		t.Fatalf("Second GetCategory failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Cached list triggered an upstream call, total = %d", calls)
	}
	if len(list.Items) != 1 || list.Items[0].Title != "Trending Now" {
		t.Errorf("Unexpected cached list: %+v", list.Items)
	}
}

func TestCategoryLimitChangeForcesRefresh(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/trending/movie/week", func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"results":[%s,%s,%s]}`,
			movieJSON(1, "First", 2026, 7.2, 1200),
			movieJSON(2, "Second", 2026, 7.0, 900),
			movieJSON(3, "Third", 2025, 6.8, 700))
	})

	ctrl, _ := newCategoryEnv(t, mux)

	list, err := ctrl.GetCategory(context.Background(), models.CategoryTrending, 2, true, "")
	if err != nil {
		t.Fatalf("First GetCategory failed: %v", err)
	}
	if list.CacheType != "trending_2" || len(list.Items) != 2 {
		t.Fatalf("Unexpected first list: %q with %d items", list.CacheType, len(list.Items))
	}

	// A different limit under the same key mismatches the discriminator and
	// rebuilds instead of serving the old shape
	list, err = ctrl.GetCategory(context.Background(), models.CategoryTrending, 3, true, "")
	if err != nil {
		t.Fatalf("Second GetCategory failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected the mismatch to rebuild, upstream calls = %d", calls)
	}
	if list.CacheType != "trending_3" || len(list.Items) != 3 {
		t.Errorf("Unexpected rebuilt list: %q with %d items", list.CacheType, len(list.Items))
	}
}

func TestFavoriteGenres(t *testing.T) {
	records := []*models.WatchRecord{
		{Rating: 5, Genres: []string{"Drama", "Crime"}},
		{Rating: 4.5, Genres: []string{"Drama"}},
		{Rating: 4, Genres: []string{"Ação", "Crime"}},
		{Rating: 4, Genres: []string{"Ação"}},
		{Rating: 4, Genres: []string{"Comédia"}},
		{Rating: 2, Genres: []string{"Terror", "Terror", "Terror"}}, // below the floor
	}

	favorites := favoriteGenres(records)
	if len(favorites) != 3 {
		t.Fatalf("Expected 3 favorites, got %v", favorites)
	}
	// Counts: Drama 2, Crime 2, Ação 2, Comédia 1. Ties break alphabetically.
	if favorites[0] != "Ação" || favorites[1] != "Crime" || favorites[2] != "Drama" {
		t.Errorf("Unexpected favorites: %v", favorites)
	}
}

func TestGetCategoryRejectsUnknownName(t *testing.T) {
	ctrl, _ := newCategoryEnv(t, http.NewServeMux())

	if _, err := ctrl.GetCategory(context.Background(), models.Category("bogus"), 20, true, ""); err == nil {
		t.Error("Expected an error for an unknown category")
	}
}
