package controllers

import "fmt"

// AggregationError reports that a single-item aggregation could not be
// completed because a required upstream call failed. It is not retried at
// this layer; retry already happened inside the TMDB client.
type AggregationError struct {
	Kind   string // "movie" or "series"
	TMDBID int64
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to aggregate %s %d: %v", e.Kind, e.TMDBID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
