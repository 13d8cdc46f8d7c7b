// Package location implements the location resolution and data
// acquisition pipeline: it turns an ambiguous location signal into a
// labeled air quality reading via an ordered chain of strategies.
package location

import (
	"context"
	"errors"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
)

// Pipeline errors.
var (
	// ErrNoLocationResolvable means even the terminal fallback strategy
	// failed. This is fatal for the resolution attempt and must reach
	// the caller; it is never silently defaulted.
	ErrNoLocationResolvable = errors.New("no location resolvable")

	// ErrNoSavedLocation indicates the user has no stored location.
	ErrNoSavedLocation = errors.New("no saved location for user")
)

// QueryKind discriminates the location signal variants.
type QueryKind string

const (
	KindCoordinates    QueryKind = "coords"
	KindPlace          QueryKind = "name"
	KindUserPreference QueryKind = "userPreference"
)

// Query is a tagged union describing how the caller wants a location
// resolved. Exactly the fields for its Kind are meaningful.
type Query struct {
	Kind QueryKind

	// Coordinates (KindCoordinates).
	Lat float64
	Lon float64

	// Free-text place (KindPlace).
	Text string

	// Authenticated user (KindUserPreference).
	UserID string
}

// CoordinatesQuery builds a query for an explicit point, e.g. a map click.
func CoordinatesQuery(lat, lon float64) Query {
	return Query{Kind: KindCoordinates, Lat: lat, Lon: lon}
}

// PlaceQuery builds a query for a free-text place search.
func PlaceQuery(text string) Query {
	return Query{Kind: KindPlace, Text: text}
}

// UserPreferenceQuery builds a query for an authenticated user's saved
// location.
func UserPreferenceQuery(userID string) Query {
	return Query{Kind: KindUserPreference, UserID: userID}
}

// PreferenceStore is the pipeline's view of stored user preferences.
type PreferenceStore interface {
	// SavedLocation returns the user's saved location text, or
	// ErrNoSavedLocation.
	SavedLocation(ctx context.Context, userID string) (string, error)
}

// Fetcher is the pipeline's view of the measurement source.
type Fetcher interface {
	FetchReading(ctx context.Context, lat, lon float64) (*measurement.Reading, error)
}

// ResolvedReading is the pipeline output: a reading labeled by the
// categorization engine.
type ResolvedReading struct {
	Reading *measurement.Reading `json:"reading"`

	// AQICategory is nil when the upstream reported no composite index;
	// downstream renders that as unknown rather than inventing a bucket.
	AQICategory *aqi.Category `json:"aqiCategory,omitempty"`

	// PollutantLevels always carries all six keys; unreported pollutants
	// are "unknown", never "good".
	PollutantLevels map[aqi.PollutantKey]aqi.Level `json:"pollutantLevels"`
}

// Label derives the categorization output for a reading.
func Label(reading *measurement.Reading) *ResolvedReading {
	resolved := &ResolvedReading{
		Reading:         reading,
		PollutantLevels: make(map[aqi.PollutantKey]aqi.Level, 6),
	}

	if reading.HasAQI() {
		category := aqi.Categorize(*reading.AQI)
		resolved.AQICategory = &category
	}

	for _, key := range aqi.AllPollutants() {
		value, ok := reading.Pollutant(key)
		if !ok {
			resolved.PollutantLevels[key] = aqi.LevelUnknown
			continue
		}
		level, err := aqi.CategorizePollutant(key, value)
		if err != nil {
			// Unreachable: the key set here is the closed set itself.
			resolved.PollutantLevels[key] = aqi.LevelUnknown
			continue
		}
		resolved.PollutantLevels[key] = level
	}

	return resolved
}
