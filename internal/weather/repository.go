package weather

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoRecords indicates no stored weather records matched the query.
var ErrNoRecords = errors.New("no weather records found")

// Record is a stored weather observation tied to a tracked location.
type Record struct {
	ID          string
	Location    string
	Latitude    float64
	Longitude   float64
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Pressure    float64
	Condition   Condition
	RecordedAt  time.Time
}

// Repository defines the interface for weather observation persistence.
type Repository interface {
	// Insert stores a new weather record.
	Insert(ctx context.Context, record *Record) error

	// Latest returns the most recent weather record for a location.
	Latest(ctx context.Context, location string) (*Record, error)
}

// FromObservation builds a Record from a provider observation, stored
// under the given location name.
func FromObservation(obs *Observation, location string, recordedAt time.Time) *Record {
	return &Record{
		ID:          uuid.New().String(),
		Location:    location,
		Latitude:    obs.Lat,
		Longitude:   obs.Lon,
		Temperature: obs.Temperature,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
		Pressure:    obs.Pressure,
		Condition:   obs.Condition,
		RecordedAt:  recordedAt,
	}
}
