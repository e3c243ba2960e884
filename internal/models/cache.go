package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CacheEntry is one cached unit of external data. The key is a composite
// "<kind>/<name>" string so per-item records and category lists live in
// separate logical namespaces instead of sharing sentinel identifiers.
type CacheEntry struct {
	Key         string `boltholdKey:"Key"`
	Payload     json.RawMessage
	RefreshedAt time.Time
}

// Kind returns the namespace portion of the key ("movie", "series", "category")
func (e *CacheEntry) Kind() string {
	if i := strings.IndexByte(e.Key, '/'); i > 0 {
		return e.Key[:i]
	}
	return e.Key
}

// MovieKey builds the cache key for a movie detail record
func MovieKey(tmdbID int64) string {
	return fmt.Sprintf("movie/%d", tmdbID)
}

// SeriesKey builds the cache key for a series detail record
func SeriesKey(tmdbID int64) string {
	return fmt.Sprintf("series/%d", tmdbID)
}

// CategoryKey builds the cache key for a category list
func CategoryKey(category Category) string {
	return fmt.Sprintf("category/%s", category)
}
