// Package history stores air quality observations for later retrieval
// and model training.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
	"github.com/vayudrishti/vayudrishti/internal/measurement"
)

// ErrNotFound indicates no stored observations matched the query.
var ErrNotFound = errors.New("no observations found")

// Record is a stored air quality observation.
type Record struct {
	ID         string
	Location   string
	Latitude   float64
	Longitude  float64
	AQI        *int
	PM25       *float64
	PM10       *float64
	RecordedAt time.Time
}

// Repository defines the interface for observation persistence.
type Repository interface {
	// Insert stores a new observation.
	Insert(ctx context.Context, record *Record) error

	// Range returns observations for a location within [from, to),
	// newest first, capped at limit.
	Range(ctx context.Context, location string, from, to time.Time, limit int) ([]Record, error)

	// Latest returns the most recent observation for a location.
	Latest(ctx context.Context, location string) (*Record, error)
}

// FromReading builds a Record from a provider reading.
func FromReading(reading *measurement.Reading, recordedAt time.Time) *Record {
	record := &Record{
		ID:         uuid.New().String(),
		Location:   reading.Location,
		Latitude:   reading.Latitude,
		Longitude:  reading.Longitude,
		AQI:        reading.AQI,
		RecordedAt: recordedAt,
	}

	if v, ok := reading.Pollutant(aqi.PollutantPM25); ok {
		record.PM25 = &v
	}
	if v, ok := reading.Pollutant(aqi.PollutantPM10); ok {
		record.PM10 = &v
	}

	return record
}
