// Package geocode defines the geocoding contract used by the location
// resolution pipeline.
package geocode

import (
	"context"
	"errors"
)

// ErrNotFound indicates the geocoder had no match for the query. This
// is an expected outcome, not a failure; callers fall through to their
// next location source.
var ErrNotFound = errors.New("location not found")

// Place is a geocoded location.
type Place struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Geocoder resolves free-text place queries to coordinates.
type Geocoder interface {
	// Geocode returns the best match for text, or ErrNotFound.
	Geocode(ctx context.Context, text string) (*Place, error)
}
