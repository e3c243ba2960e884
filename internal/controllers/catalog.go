package controllers

import (
	"context"
	"sort"

	"cinelog/internal/cache"
	"cinelog/internal/config"
	"cinelog/internal/models"
	"cinelog/internal/services/tmdb"
	"cinelog/internal/utils"

	"github.com/sirupsen/logrus"
)

// topCastSize is how many cast entries survive aggregation, in billing order
const topCastSize = 10

// teamSize caps the compact team view built from the significant crew jobs
const teamSize = 20

// significantJobs is the crew allow-list for the compact team view
var significantJobs = map[string]bool{
	"Creator":            true,
	"Executive Producer": true,
	"Producer":           true,
	"Writer":             true,
	"Director":           true,
}

// CatalogController serves aggregated item details, read-through cached
type CatalogController struct {
	store  *cache.Store
	tmdb   *tmdb.Client
	cfg    *config.Config
	logger *logrus.Logger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(store *cache.Store, tmdbClient *tmdb.Client, cfg *config.Config, logger *logrus.Logger) *CatalogController {
	return &CatalogController{
		store:  store,
		tmdb:   tmdbClient,
		cfg:    cfg,
		logger: logger,
	}
}

// GetMovie returns the aggregated record for one movie. With useCache the
// cache store serves records younger than the detail TTL without touching
// TMDB; otherwise the payload is aggregated fresh and not persisted.
func (c *CatalogController) GetMovie(ctx context.Context, tmdbID int64, region string, useCache bool) (*models.MovieDetails, error) {
	if region == "" {
		region = c.cfg.Region
	}

	if !useCache {
		return c.aggregateMovie(ctx, tmdbID, region)
	}

	var details models.MovieDetails
	err := c.store.GetOrRefresh(models.MovieKey(tmdbID), c.cfg.DetailTTL, func() (interface{}, error) {
		return c.aggregateMovie(ctx, tmdbID, region)
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// GetSeries returns the aggregated record for one TV series
func (c *CatalogController) GetSeries(ctx context.Context, tmdbID int64, useCache bool) (*models.SeriesDetails, error) {
	if !useCache {
		return c.aggregateSeries(ctx, tmdbID)
	}

	var details models.SeriesDetails
	err := c.store.GetOrRefresh(models.SeriesKey(tmdbID), c.cfg.DetailTTL, func() (interface{}, error) {
		return c.aggregateSeries(ctx, tmdbID)
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// GetSeason returns one season of a series with its episodes. Seasons are a
// thin passthrough and are not cached.
func (c *CatalogController) GetSeason(ctx context.Context, tmdbID int64, seasonNumber int) (*models.SeasonDetails, error) {
	season, err := c.tmdb.Season(ctx, tmdbID, seasonNumber)
	if err != nil {
		return nil, err
	}

	episodes := make([]models.Episode, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		episodes = append(episodes, models.Episode{
			Number:    ep.EpisodeNumber,
			Name:      ep.Name,
			Synopsis:  ep.Overview,
			Rating:    ep.VoteAverage,
			AirDate:   ep.AirDate,
			Runtime:   ep.Runtime,
			StillPath: ep.StillPath,
		})
	}

	return &models.SeasonDetails{
		Number:     season.SeasonNumber,
		Name:       season.Name,
		Synopsis:   season.Overview,
		PosterPath: season.PosterPath,
		AirDate:    season.AirDate,
		Episodes:   episodes,
	}, nil
}

// Search returns one page of title search results as summary records
func (c *CatalogController) Search(ctx context.Context, query string, page int) ([]models.MovieSummary, error) {
	results, err := c.tmdb.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return summarize(results.Results, len(results.Results), false), nil
}

// aggregateMovie merges details, credits and regional availability into one
// normalized record. Details and credits are required; availability absence
// degrades to an empty offer list.
func (c *CatalogController) aggregateMovie(ctx context.Context, tmdbID int64, region string) (*models.MovieDetails, error) {
	details, err := c.tmdb.MovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, &AggregationError{Kind: "movie", TMDBID: tmdbID, Err: err}
	}

	credits, err := c.tmdb.MovieCredits(ctx, tmdbID)
	if err != nil {
		return nil, &AggregationError{Kind: "movie", TMDBID: tmdbID, Err: err}
	}

	offers, err := c.tmdb.WatchProviders(ctx, tmdbID, region)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"tmdb_id": tmdbID,
			"region":  region,
		}).WithError(err).Warn("Watch providers unavailable, serving empty offer list")
		offers = tmdb.RegionOffers{}
	}

	genres := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genres = append(genres, g.Name)
	}

	return &models.MovieDetails{
		TMDBID:       tmdbID,
		Title:        details.Title,
		Synopsis:     details.Overview,
		PosterPath:   details.PosterPath,
		BackdropPath: details.BackdropPath,
		ReleaseYear:  utils.YearString(details.ReleaseDate),
		Rating:       details.VoteAverage,
		RuntimeMin:   details.Runtime,
		Duration:     utils.FormatRuntime(details.Runtime),
		Genres:       genres,
		Cast:         topCast(credits.Cast),
		Crew:         fullCrew(credits.Crew),
		Team:         teamView(credits.Crew),
		Offers:       flattenOffers(offers),
	}, nil
}

// aggregateSeries builds the normalized series record from the detail
// document with appended credits
func (c *CatalogController) aggregateSeries(ctx context.Context, tmdbID int64) (*models.SeriesDetails, error) {
	details, err := c.tmdb.SeriesDetails(ctx, tmdbID)
	if err != nil {
		return nil, &AggregationError{Kind: "series", TMDBID: tmdbID, Err: err}
	}

	creators := make([]string, 0, len(details.CreatedBy))
	for _, creator := range details.CreatedBy {
		creators = append(creators, creator.Name)
	}

	genres := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genres = append(genres, g.Name)
	}

	networks := make([]string, 0, len(details.Networks))
	for _, n := range details.Networks {
		networks = append(networks, n.Name)
	}

	seasons := make([]models.SeasonSummary, 0, len(details.Seasons))
	for _, season := range details.Seasons {
		seasons = append(seasons, models.SeasonSummary{
			Number:       season.SeasonNumber,
			Name:         season.Name,
			EpisodeCount: season.EpisodeCount,
			PosterPath:   season.PosterPath,
			AirDate:      season.AirDate,
		})
	}

	cast := make([]models.CastMember, 0)
	team := make([]models.CrewMember, 0)
	if details.Credits != nil {
		cast = topCast(details.Credits.Cast)
		team = teamView(details.Credits.Crew)
	}

	return &models.SeriesDetails{
		TMDBID:        tmdbID,
		Title:         details.Name,
		OriginalTitle: details.OriginalName,
		Synopsis:      details.Overview,
		PosterPath:    details.PosterPath,
		BackdropPath:  details.BackdropPath,
		Rating:        details.VoteAverage,
		Votes:         details.VoteCount,
		SeasonCount:   details.SeasonCount,
		EpisodeCount:  details.EpisodeCount,
		Status:        utils.TranslateSeriesStatus(details.Status),
		FirstAirDate:  details.FirstAirDate,
		LastAirDate:   details.LastAirDate,
		Creators:      creators,
		Genres:        genres,
		Networks:      networks,
		Cast:          cast,
		Team:          team,
		Seasons:       seasons,
	}, nil
}

// topCast sorts cast by the provider's billing order and keeps the first 10
func topCast(cast []tmdb.CastCredit) []models.CastMember {
	ordered := make([]tmdb.CastCredit, len(cast))
	copy(ordered, cast)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	if len(ordered) > topCastSize {
		ordered = ordered[:topCastSize]
	}

	members := make([]models.CastMember, 0, len(ordered))
	for _, credit := range ordered {
		members = append(members, models.CastMember{
			Name:      credit.Name,
			Character: credit.Character,
			PhotoPath: credit.ProfilePath,
		})
	}
	return members
}

// fullCrew maps the crew list as-is, jobs untranslated, for consumer-side
// processing
func fullCrew(crew []tmdb.CrewCredit) []models.CrewMember {
	members := make([]models.CrewMember, 0, len(crew))
	for _, credit := range crew {
		members = append(members, models.CrewMember{
			Name:      credit.Name,
			Job:       credit.Job,
			PhotoPath: credit.ProfilePath,
		})
	}
	return members
}

// teamView filters the crew to the significant jobs and translates the job
// titles for display
func teamView(crew []tmdb.CrewCredit) []models.CrewMember {
	members := make([]models.CrewMember, 0)
	for _, credit := range crew {
		if !significantJobs[credit.Job] {
			continue
		}
		members = append(members, models.CrewMember{
			Name:      credit.Name,
			Job:       utils.TranslateJob(credit.Job),
			PhotoPath: credit.ProfilePath,
		})
		if len(members) >= teamSize {
			break
		}
	}
	return members
}

// flattenOffers collapses the per-bucket offer lists into one list tagged
// with the offer kind
func flattenOffers(offers tmdb.RegionOffers) []models.WatchOffer {
	flattened := make([]models.WatchOffer, 0)
	for _, kind := range models.OfferKinds {
		for _, offer := range offers.Bucket(string(kind)) {
			flattened = append(flattened, models.WatchOffer{
				Provider: offer.ProviderName,
				LogoPath: offer.LogoPath,
				Kind:     kind,
			})
		}
	}
	return flattened
}

// summarize maps feed results to summary records, truncated to limit
func summarize(results []tmdb.MovieResult, limit int, withVotes bool) []models.MovieSummary {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	summaries := make([]models.MovieSummary, 0, len(results))
	for _, result := range results {
		summary := models.MovieSummary{
			TMDBID:       result.ID,
			Title:        result.Title,
			Year:         utils.ReleaseYear(result.ReleaseDate),
			Rating:       result.VoteAverage,
			Stars:        utils.Stars(result.VoteAverage),
			PosterPath:   result.PosterPath,
			BackdropPath: result.BackdropPath,
			Synopsis:     result.Overview,
			Genres:       make([]string, 0),
		}
		if withVotes {
			summary.Votes = result.VoteCount
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
