package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vayudrishti/vayudrishti/internal/weather"
)

func TestObservation_GetWindCategory(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		expected weather.WindCategory
	}{
		{"calm", 0.5, weather.WindCalm},
		{"light lower bound", 1.0, weather.WindLight},
		{"light", 2.5, weather.WindLight},
		{"moderate lower bound", 3.0, weather.WindModerate},
		{"moderate", 6.0, weather.WindModerate},
		{"strong lower bound", 8.0, weather.WindStrong},
		{"strong", 15.0, weather.WindStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &weather.Observation{WindSpeed: tt.speed}
			assert.Equal(t, tt.expected, obs.GetWindCategory())
		})
	}
}
