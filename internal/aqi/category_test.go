package aqi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayudrishti/vayudrishti/internal/aqi"
)

func TestCategorize_Breakpoints(t *testing.T) {
	tests := []struct {
		name string
		aqi  int
		want aqi.Category
	}{
		{"zero placeholder", 0, aqi.CategoryGood},
		{"negative placeholder", -10, aqi.CategoryGood},
		{"good upper bound", 50, aqi.CategoryGood},
		{"moderate lower bound", 51, aqi.CategoryModerate},
		{"moderate upper bound", 100, aqi.CategoryModerate},
		{"sensitive groups", 150, aqi.CategoryUnhealthySensitive},
		{"unhealthy", 200, aqi.CategoryUnhealthy},
		{"very unhealthy upper bound", 300, aqi.CategoryVeryUnhealthy},
		{"hazardous lower bound", 301, aqi.CategoryHazardous},
		{"extreme", 999, aqi.CategoryHazardous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aqi.Categorize(tt.aqi))
		})
	}
}

func TestCategorize_Monotonic(t *testing.T) {
	prev := aqi.Categorize(-50)
	for value := -49; value <= 500; value++ {
		current := aqi.Categorize(value)
		require.GreaterOrEqual(t, current, prev, "aqi=%d", value)
		prev = current
	}
}

func TestCategory_Colors(t *testing.T) {
	assert.Equal(t, aqi.ColorGreen, aqi.CategoryGood.Color())
	assert.Equal(t, aqi.ColorLime, aqi.CategoryModerate.Color())
	assert.Equal(t, aqi.ColorYellow, aqi.CategoryUnhealthySensitive.Color())
	assert.Equal(t, aqi.ColorOrange, aqi.CategoryUnhealthy.Color())
	assert.Equal(t, aqi.ColorRed, aqi.CategoryVeryUnhealthy.Color())
	assert.Equal(t, aqi.ColorMaroon, aqi.CategoryHazardous.Color())
}

func TestCategory_Labels(t *testing.T) {
	assert.Equal(t, "Good", aqi.CategoryGood.String())
	assert.Equal(t, "Unhealthy for Sensitive Groups", aqi.CategoryUnhealthySensitive.String())
	assert.Equal(t, "Hazardous", aqi.CategoryHazardous.String())
}

func TestCategorizePollutant(t *testing.T) {
	tests := []struct {
		key   aqi.PollutantKey
		value float64
		want  aqi.Level
	}{
		{aqi.PollutantPM25, 30, aqi.LevelGood},
		{aqi.PollutantPM25, 31, aqi.LevelModerate},
		{aqi.PollutantPM25, 90, aqi.LevelUnhealthy},
		{aqi.PollutantPM25, 95, aqi.LevelHazardous},
		{aqi.PollutantPM10, 50, aqi.LevelGood},
		{aqi.PollutantPM10, 250, aqi.LevelUnhealthy},
		{aqi.PollutantPM10, 251, aqi.LevelHazardous},
		{aqi.PollutantNO2, 80, aqi.LevelModerate},
		{aqi.PollutantSO2, 380, aqi.LevelUnhealthy},
		{aqi.PollutantCO, 0.5, aqi.LevelGood},
		{aqi.PollutantCO, 1.5, aqi.LevelModerate},
		{aqi.PollutantCO, 11, aqi.LevelHazardous},
		{aqi.PollutantO3, 168, aqi.LevelUnhealthy},
		{aqi.PollutantO3, 169, aqi.LevelHazardous},
	}

	for _, tt := range tests {
		level, err := aqi.CategorizePollutant(tt.key, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, level, "%s=%v", tt.key, tt.value)
	}
}

func TestCategorizePollutant_InvalidKey(t *testing.T) {
	_, err := aqi.CategorizePollutant("pm1", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, aqi.ErrInvalidPollutantKey)
}
