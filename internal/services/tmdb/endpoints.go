package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// langParams returns a params map preseeded with the configured language
func (c *Client) langParams() url.Values {
	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

// MovieDetails retrieves the core detail document for a movie
func (c *Client) MovieDetails(ctx context.Context, tmdbID int64) (*MovieResponse, error) {
	var details MovieResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), c.langParams(), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// MovieCredits retrieves the cast and crew document for a movie
func (c *Client) MovieCredits(ctx context.Context, tmdbID int64) (*CreditsResponse, error) {
	var credits CreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), c.langParams(), &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// WatchProviders retrieves the availability offers for a movie in one region.
// A region with no offers yields a zero RegionOffers, not an error.
func (c *Client) WatchProviders(ctx context.Context, tmdbID int64, region string) (RegionOffers, error) {
	// The watch/providers endpoint returns every region at once and takes no
	// language parameter
	var resp watchProvidersResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/watch/providers", tmdbID), nil, &resp); err != nil {
		return RegionOffers{}, err
	}
	return resp.Results[region], nil
}

// Popular retrieves one page of the popular movies feed
func (c *Client) Popular(ctx context.Context, page int) (*PagedResults, error) {
	return c.feed(ctx, "/movie/popular", page, "")
}

// TopRated retrieves one page of the top-rated movies feed
func (c *Client) TopRated(ctx context.Context, page int) (*PagedResults, error) {
	return c.feed(ctx, "/movie/top_rated", page, "")
}

// NowPlaying retrieves one page of the current theatrical releases for a region
func (c *Client) NowPlaying(ctx context.Context, page int, region string) (*PagedResults, error) {
	return c.feed(ctx, "/movie/now_playing", page, region)
}

// TrendingWeek retrieves the weekly trending movies feed
func (c *Client) TrendingWeek(ctx context.Context) (*PagedResults, error) {
	var results PagedResults
	if err := c.get(ctx, "/trending/movie/week", c.langParams(), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// DiscoverByGenre retrieves well-voted movies of one genre, most voted first
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64, minRating float64) (*PagedResults, error) {
	params := c.langParams()
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("vote_average.gte", strconv.FormatFloat(minRating, 'f', -1, 64))
	params.Set("sort_by", "vote_count.desc")

	var results PagedResults
	if err := c.get(ctx, "/discover/movie", params, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// GenreList retrieves the movie genre catalog
func (c *Client) GenreList(ctx context.Context) ([]Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, "/genre/movie/list", c.langParams(), &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// SearchMovies retrieves one page of title search results
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*PagedResults, error) {
	params := c.langParams()
	params.Set("query", query)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	var results PagedResults
	if err := c.get(ctx, "/search/movie", params, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// SeriesDetails retrieves the detail document for a TV series with its
// credits appended in the same round trip
func (c *Client) SeriesDetails(ctx context.Context, tmdbID int64) (*SeriesResponse, error) {
	params := c.langParams()
	params.Set("append_to_response", "credits")

	var details SeriesResponse
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Season retrieves one season of a TV series with its episode list
func (c *Client) Season(ctx context.Context, tmdbID int64, seasonNumber int) (*SeasonResponse, error) {
	var season SeasonResponse
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", tmdbID, seasonNumber), c.langParams(), &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// feed fetches one page of a standard movie feed endpoint
func (c *Client) feed(ctx context.Context, path string, page int, region string) (*PagedResults, error) {
	params := c.langParams()
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if region != "" {
		params.Set("region", region)
	}

	var results PagedResults
	if err := c.get(ctx, path, params, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
