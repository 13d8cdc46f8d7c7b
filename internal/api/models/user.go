package models

// Me represents the authenticated user's account summary.
type Me struct {
	UserID    string    `json:"userId"`
	Locale    string    `json:"locale"`
	CreatedAt Timestamp `json:"createdAt"`
}

// MeInput is the request body for updating user settings.
type MeInput struct {
	Locale *string `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// Preferences represents the user's saved preferences.
type Preferences struct {
	SavedLocation   string    `json:"savedLocation,omitempty"`
	HealthCondition string    `json:"healthCondition,omitempty"`
	AlertThreshold  *int      `json:"alertThreshold,omitempty"`
	AlertsEnabled   bool      `json:"alertsEnabled"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}

// PreferencesInput is the request body for a partial preferences update.
// Absent fields are unchanged; an explicit empty string clears the field.
type PreferencesInput struct {
	SavedLocation   *string `json:"savedLocation,omitempty"`
	HealthCondition *string `json:"healthCondition,omitempty"`
	AlertThreshold  *int    `json:"alertThreshold,omitempty" validate:"omitempty,gte=0,lte=500"`
	AlertsEnabled   *bool   `json:"alertsEnabled,omitempty"`
}
