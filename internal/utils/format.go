package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Stars converts a TMDB rating (0-10) to a 5-star scale rounded to the
// nearest half star, exact ties rounding to the even half. A zero or
// absent rating maps to 0.
func Stars(rating float64) float64 {
	if rating == 0 {
		return 0
	}
	return math.RoundToEven(rating) / 2
}

// FormatRuntime converts minutes to a "Xh Ymin" display string.
// The minutes segment is omitted when zero, the hours segment when
// the runtime is under an hour. Zero minutes yields an empty string.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		if mins > 0 {
			return fmt.Sprintf("%dh %dmin", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dmin", mins)
}

// ReleaseYear extracts the year from a TMDB release date ("2006-01-02").
// Returns 0 when the date is empty or malformed.
func ReleaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// YearString mirrors ReleaseYear but keeps the original string form used by
// detail payloads ("" when absent).
func YearString(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(releaseDate[:4]); err != nil {
		return ""
	}
	return releaseDate[:4]
}
