// Package measurement provides normalized air quality readings and
// cached access to upstream measurement providers.
package measurement

import (
	"context"
	"errors"
	"time"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
)

// Provider errors.
var (
	ErrUnavailable = errors.New("measurement provider unavailable")
	ErrNoData      = errors.New("no measurements for location")
)

// Reading is a normalized snapshot of air quality at a point in time.
// Upstream schemas differ; every provider converts to this shape in a
// single normalization function at its boundary.
//
// A Reading is treated as immutable once constructed. Missing values
// are nil pointers, never zero: zero is a valid clean-air measurement
// and must stay distinguishable from "not reported".
type Reading struct {
	// Location is the upstream display name for the measuring point.
	Location string `json:"location"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// AQI is the composite index, nil when the upstream did not report one.
	AQI *int `json:"aqi,omitempty"`

	// ObservedAt is when the upstream measured, not when we fetched.
	ObservedAt time.Time `json:"observedAt"`

	// Pollutants maps each reported pollutant to its concentration.
	// Unreported pollutants are absent or nil.
	Pollutants map[aqi.PollutantKey]*float64 `json:"pollutants"`
}

// Pollutant returns the concentration for key and whether it was reported.
func (r *Reading) Pollutant(key aqi.PollutantKey) (float64, bool) {
	v, ok := r.Pollutants[key]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// HasAQI reports whether the upstream provided a composite index.
func (r *Reading) HasAQI() bool {
	return r.AQI != nil
}

// Provider defines the interface for upstream measurement sources.
type Provider interface {
	// FetchReading fetches the latest reading near the given point.
	FetchReading(ctx context.Context, lat, lon float64) (*Reading, error)
}
