package models

import "time"

// WatchRecord is one locally recorded watch/rating event. Recommendations
// read these to derive a user's favorite genres; nothing in the catalog
// core writes them.
type WatchRecord struct {
	ID     uint64 `boltholdKey:"ID"`
	UserID string `boltholdIndex:"UserID"`

	TMDBID int64
	Title  string
	Rating float64 // user stars, 0-5
	Genres []string

	WatchedAt time.Time
	CreatedAt time.Time
}
