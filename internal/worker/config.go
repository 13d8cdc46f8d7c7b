// Package worker provides background polling of tracked cities.
package worker

import (
	"time"
)

// City is a tracked location polled on every cycle.
type City struct {
	// Name is the location label under which observations are stored.
	Name string

	// Lat and Lon are the city center coordinates.
	Lat float64
	Lon float64
}

// PollConfig holds configuration for the polling job.
type PollConfig struct {
	// Cities are the locations to poll. If empty, uses DefaultCities.
	Cities []City

	// Concurrency is the number of concurrent city fetches.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each city's fetch.
	// Default: 10 seconds
	Timeout time.Duration

	// StoreHistory enables persisting observations.
	// Default: true
	StoreHistory bool

	// FetchWeather enables fetching weather alongside air quality.
	// Default: true
	FetchWeather bool

	// EvaluateAlerts enables threshold alert evaluation.
	// Default: true
	EvaluateAlerts bool
}

// DefaultPollConfig returns the default polling configuration.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Cities:         DefaultCities(),
		Concurrency:    3,
		Timeout:        10 * time.Second,
		StoreHistory:   true,
		FetchWeather:   true,
		EvaluateAlerts: true,
	}
}

// DefaultCities returns the cities polled by default.
func DefaultCities() []City {
	return []City{
		{Name: "Hyderabad", Lat: 17.385044, Lon: 78.486671},
		{Name: "Delhi", Lat: 28.6139, Lon: 77.2090},
		{Name: "Chennai", Lat: 13.0827, Lon: 80.2707},
	}
}
