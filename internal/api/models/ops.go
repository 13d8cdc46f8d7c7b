package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// LastResolved reports the most recently committed air quality
// resolution, for operators checking what the service last served.
type LastResolved struct {
	Location   string    `json:"location"`
	AQI        *int      `json:"aqi,omitempty"`
	Category   *string   `json:"category,omitempty"`
	ObservedAt Timestamp `json:"observedAt"`
}

// ProviderStatus represents the status of an external data provider.
type ProviderStatus struct {
	Provider      string       `json:"provider"`
	Status        HealthStatus `json:"status"`
	LastSuccessAt *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp   `json:"lastFailureAt,omitempty"`
	Message       *string      `json:"message,omitempty"`
}
