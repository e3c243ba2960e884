package models

// Category identifies one precomputed content list
type Category string

const (
	CategoryTrending    Category = "trending"
	CategoryGoats       Category = "goats"
	CategoryClassics    Category = "classics"
	CategoryNowPlaying  Category = "now_playing"
	CategoryRecommended Category = "recommended"
)

// Valid reports whether the category name is one we serve
func (c Category) Valid() bool {
	switch c {
	case CategoryTrending, CategoryGoats, CategoryClassics, CategoryNowPlaying, CategoryRecommended:
		return true
	}
	return false
}

// OfferKind is the TMDB watch-provider bucket an offer came from
type OfferKind string

const (
	OfferFlatrate OfferKind = "flatrate" // subscription
	OfferRent     OfferKind = "rent"
	OfferBuy      OfferKind = "buy"
	OfferAds      OfferKind = "ads"
	OfferFree     OfferKind = "free"
)

// OfferKinds lists the provider buckets in the order offers are flattened
var OfferKinds = []OfferKind{OfferFlatrate, OfferRent, OfferBuy, OfferAds, OfferFree}
