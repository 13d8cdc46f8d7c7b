package aqi

import (
	"errors"
	"fmt"
)

// ErrInvalidPollutantKey indicates a pollutant key outside the closed
// key set. The caller passed a key that cannot exist; this is a
// programmer error, not bad upstream data.
var ErrInvalidPollutantKey = errors.New("invalid pollutant key")

// PollutantKey identifies a tracked pollutant.
type PollutantKey string

const (
	PollutantPM25 PollutantKey = "pm25"
	PollutantPM10 PollutantKey = "pm10"
	PollutantNO2  PollutantKey = "no2"
	PollutantSO2  PollutantKey = "so2"
	PollutantCO   PollutantKey = "co"
	PollutantO3   PollutantKey = "o3"
)

// AllPollutants returns the closed set of pollutant keys in stable order.
func AllPollutants() []PollutantKey {
	return []PollutantKey{
		PollutantPM25, PollutantPM10, PollutantNO2,
		PollutantSO2, PollutantCO, PollutantO3,
	}
}

// Level is the per-pollutant severity on the coarse four-level scale.
// This scale is distinct from Category and never mapped onto it; the
// two are consumed by different parts of the product.
type Level string

const (
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
	LevelUnhealthy Level = "unhealthy"
	LevelHazardous Level = "hazardous"

	// LevelUnknown marks a pollutant the upstream did not report.
	// Zero is a valid clean-air value, so absence is never zero.
	LevelUnknown Level = "unknown"
)

// pollutantBreakpoints holds the inclusive upper bounds for
// good/moderate/unhealthy; anything above the last bound is hazardous.
// Derived from the Indian NAQI standard per-pollutant tables.
type pollutantBreakpoints struct {
	good      float64
	moderate  float64
	unhealthy float64
}

var breakpoints = map[PollutantKey]pollutantBreakpoints{
	PollutantPM25: {good: 30, moderate: 60, unhealthy: 90},
	PollutantPM10: {good: 50, moderate: 100, unhealthy: 250},
	PollutantNO2:  {good: 40, moderate: 80, unhealthy: 180},
	PollutantSO2:  {good: 40, moderate: 80, unhealthy: 380},
	PollutantCO:   {good: 1, moderate: 2, unhealthy: 10},
	PollutantO3:   {good: 50, moderate: 100, unhealthy: 168},
}

// CategorizePollutant maps a single pollutant concentration to its Level.
// Returns ErrInvalidPollutantKey for keys outside the closed set.
func CategorizePollutant(key PollutantKey, concentration float64) (Level, error) {
	bp, ok := breakpoints[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPollutantKey, key)
	}

	switch {
	case concentration <= bp.good:
		return LevelGood, nil
	case concentration <= bp.moderate:
		return LevelModerate, nil
	case concentration <= bp.unhealthy:
		return LevelUnhealthy, nil
	default:
		return LevelHazardous, nil
	}
}
