package controllers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cinelog/internal/cache"
	"cinelog/internal/config"
	"cinelog/internal/models"
	"cinelog/internal/services/tmdb"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	goatsMinRating       = 8.0
	goatsMinVotes        = 1000
	goatsPages           = 3
	classicsMaxYear      = 2000
	classicsMinRating    = 7.5
	classicsMinVotes     = 500
	classicsPages        = 4
	recommendedMinRating = 7.0
	favoriteGenreCount   = 3
	favoriteMinStars     = 4.0
)

// genreTableKey is the go-cache entry holding the name→id genre table
const genreTableKey = "genre_table"

// staticGenreIDs seeds the genre table so recommendations work before (or
// without) a successful /genre/movie/list fetch. Names are the pt-BR forms
// TMDB returns for the configured language.
var staticGenreIDs = map[string]int64{
	"Ação":              28,
	"Aventura":          12,
	"Animação":          16,
	"Comédia":           35,
	"Crime":             80,
	"Documentário":      99,
	"Drama":             18,
	"Família":           10751,
	"Fantasia":          14,
	"História":          36,
	"Terror":            27,
	"Música":            10402,
	"Mistério":          9648,
	"Romance":           10749,
	"Ficção científica": 878,
	"Cinema TV":         10770,
	"Thriller":          53,
	"Guerra":            10752,
	"Faroeste":          37,
}

// CategoryController serves the precomputed category lists, each read-through
// cached with its own TTL and refresh policy
type CategoryController struct {
	store  *cache.Store
	tmdb   *tmdb.Client
	db     *models.Database
	cfg    *config.Config
	genres *gocache.Cache
	logger *logrus.Logger
}

// NewCategoryController creates a new category controller
func NewCategoryController(store *cache.Store, tmdbClient *tmdb.Client, db *models.Database, cfg *config.Config, logger *logrus.Logger) *CategoryController {
	return &CategoryController{
		store:  store,
		tmdb:   tmdbClient,
		db:     db,
		cfg:    cfg,
		genres: gocache.New(24*time.Hour, time.Hour),
		logger: logger,
	}
}

// GetCategory returns the ranked list for one content category. The result
// is read-through cached under the category's composite key; the cache_type
// discriminator is verified after lookup and a mismatch (different limit, or
// an unrelated payload under the same key) forces a refresh.
func (c *CategoryController) GetCategory(ctx context.Context, category models.Category, limit int, useCache bool, userID string) (*models.CategoryList, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if limit <= 0 {
		limit = 20
	}

	if !useCache {
		return c.build(ctx, category, limit, userID)
	}

	key := models.CategoryKey(category)
	if category == models.CategoryRecommended && userID != "" {
		key = fmt.Sprintf("%s/u/%s", key, userID)
	}
	want := cacheType(category, limit)

	refresh := func() (interface{}, error) {
		return c.build(ctx, category, limit, userID)
	}

	var list models.CategoryList
	if err := c.store.GetOrRefresh(key, c.ttl(category), refresh, &list); err != nil {
		return nil, err
	}

	if list.CacheType != want {
		c.logger.WithFields(logrus.Fields{
			"key":  key,
			"have": list.CacheType,
			"want": want,
		}).Debug("Cache type mismatch, refreshing category")
		if err := c.store.GetOrRefresh(key, 0, refresh, &list); err != nil {
			return nil, err
		}
	}

	return &list, nil
}

// RefreshCategory recomputes a category list and persists it regardless of
// freshness. Used by the scheduler to keep the shared lists warm.
func (c *CategoryController) RefreshCategory(ctx context.Context, category models.Category, limit int) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	if limit <= 0 {
		limit = 20
	}

	refresh := func() (interface{}, error) {
		return c.build(ctx, category, limit, "")
	}

	var list models.CategoryList
	return c.store.GetOrRefresh(models.CategoryKey(category), 0, refresh, &list)
}

// ttl returns the staleness tolerance of one category, reflecting how fast
// its underlying ranking changes
func (c *CategoryController) ttl(category models.Category) time.Duration {
	switch category {
	case models.CategoryTrending:
		return c.cfg.TrendingTTL
	case models.CategoryRecommended:
		return c.cfg.RecommendTTL
	case models.CategoryNowPlaying:
		return c.cfg.NowPlayingTTL
	case models.CategoryGoats:
		return c.cfg.GoatsTTL
	case models.CategoryClassics:
		return c.cfg.ClassicsTTL
	}
	return c.cfg.TrendingTTL
}

// cacheType builds the payload discriminator for a category and limit
func cacheType(category models.Category, limit int) string {
	return fmt.Sprintf("%s_%d", category, limit)
}

// build computes a category list from the provider feeds
func (c *CategoryController) build(ctx context.Context, category models.Category, limit int, userID string) (*models.CategoryList, error) {
	var (
		items []models.MovieSummary
		err   error
	)

	switch category {
	case models.CategoryTrending:
		items, err = c.buildTrending(ctx, limit)
	case models.CategoryGoats:
		items, err = c.buildGoats(ctx, limit)
	case models.CategoryClassics:
		items, err = c.buildClassics(ctx, limit)
	case models.CategoryNowPlaying:
		items, err = c.buildNowPlaying(ctx, limit)
	case models.CategoryRecommended:
		items, err = c.buildRecommended(ctx, limit, userID)
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if err != nil {
		return nil, err
	}

	return &models.CategoryList{
		CacheType: cacheType(category, limit),
		Items:     items,
	}, nil
}

// buildTrending truncates the weekly trending feed in provider order
func (c *CategoryController) buildTrending(ctx context.Context, limit int) ([]models.MovieSummary, error) {
	feed, err := c.tmdb.TrendingWeek(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(feed.Results, limit, false), nil
}

// buildNowPlaying truncates the theatrical feed for the configured region
func (c *CategoryController) buildNowPlaying(ctx context.Context, limit int) ([]models.MovieSummary, error) {
	feed, err := c.tmdb.NowPlaying(ctx, 1, c.cfg.Region)
	if err != nil {
		return nil, err
	}
	return summarize(feed.Results, limit, false), nil
}

// buildGoats scans the top-rated feed for movies with both a very high
// rating and a significant vote count. A failed page is skipped; remaining
// pages still contribute.
func (c *CategoryController) buildGoats(ctx context.Context, limit int) ([]models.MovieSummary, error) {
	collected := make([]models.MovieSummary, 0, limit)

	for page := 1; page <= goatsPages && len(collected) < limit; page++ {
		feed, err := c.tmdb.TopRated(ctx, page)
		if err != nil {
			c.logger.WithField("page", page).WithError(err).Warn("Skipping failed top-rated page for goats")
			continue
		}

		for _, result := range feed.Results {
			if len(collected) >= limit {
				break
			}
			if result.VoteAverage >= goatsMinRating && result.VoteCount >= goatsMinVotes {
				collected = append(collected, summarize([]tmdb.MovieResult{result}, 1, true)...)
			}
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].Rating != collected[j].Rating {
			return collected[i].Rating > collected[j].Rating
		}
		return collected[i].Votes > collected[j].Votes
	})

	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// buildClassics scans the top-rated feed for well-voted movies released
// before 2000, ties broken toward older films
func (c *CategoryController) buildClassics(ctx context.Context, limit int) ([]models.MovieSummary, error) {
	collected := make([]models.MovieSummary, 0, limit)

	for page := 1; page <= classicsPages && len(collected) < limit; page++ {
		feed, err := c.tmdb.TopRated(ctx, page)
		if err != nil {
			c.logger.WithField("page", page).WithError(err).Warn("Skipping failed top-rated page for classics")
			continue
		}

		for _, result := range feed.Results {
			if len(collected) >= limit {
				break
			}
			summary := summarize([]tmdb.MovieResult{result}, 1, true)[0]
			if summary.Year > 0 && summary.Year < classicsMaxYear &&
				result.VoteAverage >= classicsMinRating && result.VoteCount >= classicsMinVotes {
				collected = append(collected, summary)
			}
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].Rating != collected[j].Rating {
			return collected[i].Rating > collected[j].Rating
		}
		return collected[i].Year < collected[j].Year
	})

	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// buildRecommended personalizes from the user's watch history when possible
// and falls back to the popular feed filtered by rating
func (c *CategoryController) buildRecommended(ctx context.Context, limit int, userID string) ([]models.MovieSummary, error) {
	if userID != "" {
		items, err := c.buildPersonalized(ctx, limit, userID)
		if err != nil {
			return nil, err
		}
		if items != nil {
			return items, nil
		}
		// No usable history, fall through to the popular feed
	}

	feed, err := c.tmdb.Popular(ctx, 1)
	if err != nil {
		return nil, err
	}

	filtered := make([]tmdb.MovieResult, 0, len(feed.Results))
	for _, result := range feed.Results {
		if result.VoteAverage >= recommendedMinRating {
			filtered = append(filtered, result)
		}
	}
	return summarize(filtered, limit, false), nil
}

// buildPersonalized derives the user's favorite genres from local watch
// history and queries discovery per genre. Returns nil items when the user
// has no usable history.
func (c *CategoryController) buildPersonalized(ctx context.Context, limit int, userID string) ([]models.MovieSummary, error) {
	records, err := c.db.GetWatchRecordsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history for %s: %w", userID, err)
	}

	favorites := favoriteGenres(records)
	if len(favorites) == 0 {
		return nil, nil
	}

	seen := make(map[int64]bool, len(records))
	for _, record := range records {
		seen[record.TMDBID] = true
	}

	merged := make([]models.MovieSummary, 0)
	added := make(map[int64]bool)
	for _, genre := range favorites {
		genreID, ok := c.genreID(ctx, genre)
		if !ok {
			c.logger.WithField("genre", genre).Debug("No TMDB id for favorite genre, skipping")
			continue
		}

		feed, err := c.tmdb.DiscoverByGenre(ctx, genreID, recommendedMinRating)
		if err != nil {
			c.logger.WithField("genre", genre).WithError(err).Warn("Skipping failed discovery query")
			continue
		}

		for _, summary := range summarize(feed.Results, len(feed.Results), true) {
			if seen[summary.TMDBID] || added[summary.TMDBID] {
				continue
			}
			added[summary.TMDBID] = true
			merged = append(merged, summary)
		}
	}

	if len(merged) == 0 {
		return nil, nil
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Votes > merged[j].Votes
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// favoriteGenres returns up to 3 genres, most watched first, over the
// records the user rated 4 stars or better
func favoriteGenres(records []*models.WatchRecord) []string {
	counts := make(map[string]int)
	for _, record := range records {
		if record.Rating < favoriteMinStars {
			continue
		}
		for _, genre := range record.Genres {
			counts[genre]++
		}
	}

	genres := make([]string, 0, len(counts))
	for genre := range counts {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > favoriteGenreCount {
		genres = genres[:favoriteGenreCount]
	}
	return genres
}

// genreID resolves a genre display name to its TMDB id through the in-memory
// genre table, fetching the provider catalog once per table TTL and falling
// back to the static table when the fetch fails
func (c *CategoryController) genreID(ctx context.Context, name string) (int64, bool) {
	if cached, ok := c.genres.Get(genreTableKey); ok {
		table := cached.(map[string]int64)
		id, ok := table[name]
		return id, ok
	}

	table := make(map[string]int64, len(staticGenreIDs))
	for genreName, id := range staticGenreIDs {
		table[genreName] = id
	}

	genres, err := c.tmdb.GenreList(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Genre catalog unavailable, using static table")
	} else {
		for _, genre := range genres {
			table[genre.Name] = genre.ID
		}
	}
	c.genres.Set(genreTableKey, table, gocache.DefaultExpiration)

	id, ok := table[name]
	return id, ok
}
