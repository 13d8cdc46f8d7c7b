package models

// PollutantReading is a single pollutant's concentration and severity.
// Concentration is nil when the upstream station did not report the
// pollutant, in which case Level is "unknown".
type PollutantReading struct {
	Concentration *float64 `json:"concentration"`
	Level         string   `json:"level"`
}

// AirQuality is the current air quality at a resolved location.
type AirQuality struct {
	Location    string                      `json:"location"`
	Coordinates Point                       `json:"coordinates"`
	AQI         *int                        `json:"aqi"`
	Category    *string                     `json:"category,omitempty"`
	Color       *string                     `json:"color,omitempty"`
	Pollutants  map[string]PollutantReading `json:"pollutants"`
	ObservedAt  *Timestamp                  `json:"observedAt,omitempty"`
}

// AdvisoryResponse is a health advisory for an AQI value.
type AdvisoryResponse struct {
	AQI      int    `json:"aqi"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Warning  string `json:"warning,omitempty"`
	Color    string `json:"color"`
}

// HistoryEntry is a stored air quality observation.
type HistoryEntry struct {
	Location   string    `json:"location"`
	AQI        *int      `json:"aqi"`
	RecordedAt Timestamp `json:"recordedAt"`
}

// HistoryResponse is a page of stored observations for a location.
type HistoryResponse struct {
	Location string         `json:"location"`
	Entries  []HistoryEntry `json:"entries"`
}

// ForecastPoint is a single predicted AQI value.
type ForecastPoint struct {
	Time Timestamp `json:"time"`
	AQI  float64   `json:"aqi"`
}

// ForecastResponse is a sequence of predicted AQI values for a location.
type ForecastResponse struct {
	Location string          `json:"location"`
	Points   []ForecastPoint `json:"points"`
}

// Weather is the current weather at a resolved location.
type Weather struct {
	Location    string     `json:"location"`
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidity"`
	WindSpeed   float64    `json:"windSpeed"`
	Conditions  string     `json:"conditions"`
	ObservedAt  *Timestamp `json:"observedAt,omitempty"`
}
