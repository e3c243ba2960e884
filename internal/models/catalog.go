package models

// Payload field names follow the canonical scheme of the application's most
// recent payload version (tmdb_id/titulo/sinopse/...). Older historical
// variants (id_tmdb, overview) are not reconciled.

// CastMember is one top-billed cast entry
type CastMember struct {
	Name      string `json:"nome"`
	Character string `json:"personagem"`
	PhotoPath string `json:"foto_path"`
}

// CrewMember is one crew entry
type CrewMember struct {
	Name      string `json:"nome"`
	Job       string `json:"cargo"`
	PhotoPath string `json:"foto_path"`
}

// WatchOffer is one flattened regional availability offer
type WatchOffer struct {
	Provider string    `json:"nome"`
	LogoPath string    `json:"logo_path"`
	Kind     OfferKind `json:"tipo"`
}

// MovieDetails is the aggregated view of a single movie: core details,
// credits and regional availability merged into one record. Built wholesale
// on every aggregation, never partially mutated.
type MovieDetails struct {
	TMDBID       int64        `json:"tmdb_id"`
	Title        string       `json:"titulo"`
	Synopsis     string       `json:"sinopse"`
	PosterPath   string       `json:"poster_path"`
	BackdropPath string       `json:"backdrop_path"`
	ReleaseYear  string       `json:"ano_lancamento"`
	Rating       float64      `json:"nota_tmdb"`
	RuntimeMin   int          `json:"duracao_min"`
	Duration     string       `json:"duracao"` // display form, "2h 16min"
	Genres       []string     `json:"generos"`
	Cast         []CastMember `json:"elenco_principal"`
	Crew         []CrewMember `json:"equipe_completa"` // unfiltered, for consumer-side processing
	Team         []CrewMember `json:"equipe"`          // significant jobs only
	Offers       []WatchOffer `json:"plataformas"`
}

// MovieSummary is one entry of a category list
type MovieSummary struct {
	TMDBID       int64    `json:"tmdb_id"`
	Title        string   `json:"titulo"`
	Year         int      `json:"ano"`
	Rating       float64  `json:"nota"`
	Stars        float64  `json:"nota_estrelas"`
	Votes        int      `json:"votos,omitempty"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	Synopsis     string   `json:"sinopse"`
	Genres       []string `json:"generos"`
}

// CategoryList is a ranked list of summaries for one content category.
// CacheType discriminates the payload when read back from the cache.
type CategoryList struct {
	CacheType string         `json:"cache_type"`
	Items     []MovieSummary `json:"filmes"`
}

// SeriesDetails is the aggregated view of a single TV series
type SeriesDetails struct {
	TMDBID        int64           `json:"tmdb_id"`
	Title         string          `json:"titulo"`
	OriginalTitle string          `json:"titulo_original"`
	Synopsis      string          `json:"sinopse"`
	PosterPath    string          `json:"poster_path"`
	BackdropPath  string          `json:"backdrop_path"`
	Rating        float64         `json:"nota_tmdb"`
	Votes         int             `json:"votos"`
	SeasonCount   int             `json:"numero_temporadas"`
	EpisodeCount  int             `json:"numero_episodios"`
	Status        string          `json:"status"`
	FirstAirDate  string          `json:"data_primeira_exibicao"`
	LastAirDate   string          `json:"data_ultima_exibicao"`
	Creators      []string        `json:"criadores"`
	Genres        []string        `json:"generos"`
	Networks      []string        `json:"redes"`
	Cast          []CastMember    `json:"elenco_principal"`
	Team          []CrewMember    `json:"equipe"`
	Seasons       []SeasonSummary `json:"temporadas"`
}

// SeasonSummary is the compact per-season entry inside SeriesDetails
type SeasonSummary struct {
	Number       int    `json:"numero_temporada"`
	Name         string `json:"nome"`
	EpisodeCount int    `json:"numero_episodios"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"data_exibicao"`
}

// SeasonDetails is the full view of one season with its episodes
type SeasonDetails struct {
	Number     int       `json:"numero_temporada"`
	Name       string    `json:"nome"`
	Synopsis   string    `json:"sinopse"`
	PosterPath string    `json:"poster_path"`
	AirDate    string    `json:"data_exibicao"`
	Episodes   []Episode `json:"episodios"`
}

// Episode is one episode entry of a season
type Episode struct {
	Number    int     `json:"numero"`
	Name      string  `json:"nome"`
	Synopsis  string  `json:"sinopse"`
	Rating    float64 `json:"nota"`
	AirDate   string  `json:"data_exibicao"`
	Runtime   int     `json:"duracao"`
	StillPath string  `json:"imagem"`
}
