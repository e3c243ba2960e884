package tmdb

// Wire types for the TMDB API. Only documented fields the application reads
// are declared; everything else in a response is forward-compatible noise.

// Genre is one entry of a genre list
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieResult is a single movie entry of a feed or discovery page
type MovieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int64 `json:"genre_ids"`
}

// PagedResults is one page of a paginated feed
type PagedResults struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// MovieResponse is the /movie/{id} detail document
type MovieResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
}

// CastCredit is one cast entry of a credits document
type CastCredit struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewCredit is one crew entry of a credits document
type CrewCredit struct {
	Name        string `json:"name"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path"`
}

// CreditsResponse is the /movie/{id}/credits document
type CreditsResponse struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// ProviderOffer is one watch-provider entry inside a region bucket
type ProviderOffer struct {
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionOffers groups a region's offers by monetization bucket
type RegionOffers struct {
	Flatrate []ProviderOffer `json:"flatrate"`
	Rent     []ProviderOffer `json:"rent"`
	Buy      []ProviderOffer `json:"buy"`
	Ads      []ProviderOffer `json:"ads"`
	Free     []ProviderOffer `json:"free"`
}

// Bucket returns the offers of one monetization bucket by its wire name
func (r RegionOffers) Bucket(kind string) []ProviderOffer {
	switch kind {
	case "flatrate":
		return r.Flatrate
	case "rent":
		return r.Rent
	case "buy":
		return r.Buy
	case "ads":
		return r.Ads
	case "free":
		return r.Free
	}
	return nil
}

// watchProvidersResponse is the /movie/{id}/watch/providers document
type watchProvidersResponse struct {
	Results map[string]RegionOffers `json:"results"`
}

// genreListResponse is the /genre/movie/list document
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// SeriesResponse is the /tv/{id} detail document with appended credits
type SeriesResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	SeasonCount  int     `json:"number_of_seasons"`
	EpisodeCount int     `json:"number_of_episodes"`
	Status       string  `json:"status"`
	FirstAirDate string  `json:"first_air_date"`
	LastAirDate  string  `json:"last_air_date"`
	CreatedBy    []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Genres   []Genre `json:"genres"`
	Networks []struct {
		Name string `json:"name"`
	} `json:"networks"`
	Seasons []SeasonResult   `json:"seasons"`
	Credits *CreditsResponse `json:"credits"`
}

// SeasonResult is the compact season entry inside a series document
type SeasonResult struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
}

// EpisodeResult is one episode of a season document
type EpisodeResult struct {
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	VoteAverage   float64 `json:"vote_average"`
	AirDate       string  `json:"air_date"`
	Runtime       int     `json:"runtime"`
	StillPath     string  `json:"still_path"`
}

// SeasonResponse is the /tv/{id}/season/{n} document
type SeasonResponse struct {
	SeasonNumber int             `json:"season_number"`
	Name         string          `json:"name"`
	Overview     string          `json:"overview"`
	PosterPath   string          `json:"poster_path"`
	AirDate      string          `json:"air_date"`
	Episodes     []EpisodeResult `json:"episodes"`
}
